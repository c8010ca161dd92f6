// Package engine implements the round-robin MICE imputation machinery:
// visit scheduling, predictor selection, conditional model fitting and
// stochastic sampling, multi-round orchestration, sample aggregation, and
// replay of persisted ensembles for out-of-sample row completion.
//
// The chain is deliberately sequential in both dimensions. Rounds are
// strictly ordered, and within a round columns are processed strictly in
// visit order: fitting column c at round r sees the freshly imputed values
// of every column already visited this round. Parallelizing either axis
// would change the sampling statistics, so the engine never does.
//
// Most callers should use the root imputego package instead of driving the
// engine directly.
package engine
