// Package imputego fills missing entries in numeric tables using
// Multivariate Imputation by Chained Equations (MICE).
//
// Each column with missing data is visited in a fixed order every round and
// regressed against the other columns; replacement values are sampled from
// the fitted model, and the post-burn-in completions are averaged into the
// final matrix. Later columns within a round see the freshly imputed values
// of earlier columns; that chained dependency is the algorithm.
//
// Missing entries are NaN. The regression model is pluggable; imputego
// ships the chain, not the regressor (see the model package).
//
// # Quick Start
//
//	imp, _ := imputego.New(newRidge,
//	    imputego.WithImputations(50),
//	    imputego.WithBurnIn(10),
//	    imputego.WithSeed(42),
//	)
//	completed, err := imp.Complete(ctx, data) // data [][]float64 with NaN holes
//
// # Sampling Modes
//
// Two sampling algorithms with different guarantees:
//
//	// Posterior-predictive ("col", default): draw each missing value from
//	// Normal(mean, sqrt(variance)) of the model's predictive distribution.
//	imputego.WithImputeType(imputego.ImputePosterior)
//
//	// Predictive mean matching ("pmm"): copy the actual observed value of
//	// one of the k observed rows with the nearest predictions. Every
//	// imputed value is a real previously observed value.
//	imputego.WithImputeType(imputego.ImputePMM)
//
// # Out-of-Sample Completion
//
// With model retention enabled, a run's fitted ensemble can be persisted
// and replayed to complete single new records without refitting:
//
//	imp, _ := imputego.New(newRidge, imputego.WithModelRetention(), imputego.WithSeed(7))
//	_, _ = imp.Complete(ctx, trainingData)
//	_ = imp.SaveModelsToStore(ctx, store, "models/census.snap")
//
//	// later, elsewhere
//	imp2, _ := imputego.New(newRidge)
//	_ = imp2.LoadModelsFromStore(ctx, store, "models/census.snap")
//	row, err := imp2.CompleteRow(ctx, newRecord, 42)
//
// # Determinism
//
// The whole run consumes one owned, ordered random stream. A fixed seed
// plus identical configuration reproduces the output exactly; without a
// seed, results vary run to run.
//
// # Key Properties
//
//   - Observed cells are never overwritten; output shape equals input shape
//   - No missing values means the input passes through unchanged
//   - PMM-imputed values are always members of the column's observed values
//   - Configured bounds clip every imputed value
//   - All configuration and input errors surface before the first round
package imputego
