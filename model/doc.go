// Package model defines the contract between the imputation engine and the
// per-column regression models it drives.
//
// Imputego deliberately ships no regression model of its own: anything that
// can fit a numeric target against numeric predictors and report a
// predictive mean/variance can back the chain. Bayesian ridge regression is
// the classic choice for MICE, but the engine only sees the interface.
//
// # Persistence
//
// Fitted models are retained per (round, column) slot when model retention
// is enabled and are serialized with encoding/gob. Implementations that
// should survive a snapshot must be gob-encodable and registered:
//
//	func init() {
//	    gob.Register(&RidgeModel{})
//	}
//
// Unexported fields (such as a captured rng) are skipped by gob; replay only
// uses PredictDist, which must be deterministic given the fitted state and,
// because batch completion replays from several goroutines, must not mutate
// the model.
package model
