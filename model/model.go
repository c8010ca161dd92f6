package model

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// ColumnModel is the regression model the engine fits for a single column.
//
// The engine calls Fit once per (round, column) pair on the observed rows of
// the target column and then samples replacement values through Predict or
// PredictDist, depending on the configured impute type. Fit and Predict are
// always driven from a single goroutine and may keep mutable state.
//
// Fitted state is read-only afterwards: batch row completion replays a
// retained ensemble from several goroutines at once, calling PredictDist on
// the same fitted instance concurrently. PredictDist must therefore not
// mutate the receiver once Fit has returned; compute into fresh slices
// rather than a scratch buffer, and do not draw from captured random state.
type ColumnModel interface {
	// Fit trains the model on the observed rows. x holds one row per
	// observed record and one column per predictor; y holds the observed
	// target values, len(y) == number of rows in x.
	Fit(x mat.Matrix, y []float64) error

	// Predict returns one point estimate per row of x. With randomDraw set,
	// the estimate is drawn stochastically (e.g. from sampled coefficients);
	// otherwise it is the deterministic best estimate.
	Predict(x mat.Matrix, randomDraw bool) ([]float64, error)

	// PredictDist returns the per-row predictive mean and variance.
	PredictDist(x mat.Matrix) (means, variances []float64, err error)
}

// Factory creates a fresh, unfitted ColumnModel. The engine calls it once
// per (round, column) pair so that retained ensembles never alias a shared
// model instance.
//
// The supplied rng is the engine's owned random stream; models that support
// stochastic prediction should draw from it rather than from process-global
// state, so that a fixed seed reproduces the whole run.
type Factory func(rng *rand.Rand) ColumnModel
