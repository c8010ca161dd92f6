package engine

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/exp/rand"

	"github.com/hupe1980/imputego/fill"
	"github.com/hupe1980/imputego/model"
)

// Logger is a simple interface for progress logging. Logging is purely
// observational and never affects control flow.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// noopLogger is the default logger; it does nothing.
type noopLogger struct{}

func (noopLogger) Infof(format string, args ...interface{})  {}
func (noopLogger) Errorf(format string, args ...interface{}) {}

// MetricsObserver receives per-round and per-fit timings.
type MetricsObserver interface {
	// RecordRound is called after each completed round.
	RecordRound(round int, duration time.Duration)

	// RecordFit is called after each per-column model fit.
	RecordFit(column int, duration time.Duration)
}

type noopMetrics struct{}

func (noopMetrics) RecordRound(int, time.Duration) {}
func (noopMetrics) RecordFit(int, time.Duration)   {}

// Engine drives burn-in and sampling rounds over a working matrix. An
// Engine instance serves one Run at a time; independent runs need their own
// Engine so that each owns its random stream and working state.
type Engine struct {
	cfg     Config
	factory model.Factory
	rng     *rand.Rand
	logger  Logger
	metrics MetricsObserver
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the progress logger.
func WithLogger(l Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMetrics sets the metrics observer.
func WithMetrics(m MetricsObserver) Option {
	return func(e *Engine) {
		if m != nil {
			e.metrics = m
		}
	}
}

// New validates the configuration and creates an Engine. All configuration
// errors surface here, before any data is touched.
func New(cfg Config, factory model.Factory, optFns ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if factory == nil {
		return nil, &ErrInvalidConfig{Param: "model factory", Value: "nil"}
	}

	e := &Engine{
		cfg:     cfg,
		factory: factory,
		rng:     rand.New(rand.NewSource(seedOf(cfg))),
		logger:  noopLogger{},
		metrics: noopMetrics{},
	}
	for _, fn := range optFns {
		fn(e)
	}
	return e, nil
}

func seedOf(cfg Config) uint64 {
	if cfg.Seed != nil {
		return *cfg.Seed
	}
	return uint64(time.Now().UnixNano())
}

// Result is the outcome of a full-matrix run.
type Result struct {
	// Completed is the input with every missing cell replaced by the mean
	// of its post-burn-in samples. Observed cells equal the input exactly.
	Completed [][]float64

	// Samples holds one vector of missing-cell values per sampling round,
	// each in Positions order.
	Samples [][]float64

	// Positions lists the missing cells as [row, col], column-major.
	Positions [][2]int

	// State carries the retained models, visit order and init values when
	// model retention is enabled; nil otherwise.
	State *State
}

// Run executes the full chain: validate, mask, schedule, initial fill,
// burn-in and sampling rounds, then aggregation. Any model failure aborts
// the whole run; no partial result is ever returned. The context is checked
// at round boundaries only, where matrix state is consistent.
func (e *Engine) Run(ctx context.Context, X [][]float64) (*Result, error) {
	rows, cols, err := fill.Validate(X)
	if err != nil {
		return nil, err
	}

	work := newMatrix(X, rows, cols)
	msk := newMask(work)

	order, err := visitOrder(msk, e.cfg.VisitSequence)
	if err != nil {
		return nil, err
	}

	// Pristine copy for the aggregator; missing cells are still NaN here.
	orig := work.clone()

	totalRounds := e.cfg.rounds()

	if msk.total == 0 {
		// Nothing to impute; the input passes through unchanged.
		res := &Result{Completed: work.toRows()}
		if e.cfg.KeepModels {
			res.State = &State{
				Config:     e.cfg,
				Cols:       cols,
				VisitOrder: order,
				InitValues: make([]float64, cols),
				Models:     NewEnsemble(totalRounds, cols),
			}
		}
		return res, nil
	}

	initValues, err := e.initialFill(work, msk, order)
	if err != nil {
		return nil, err
	}

	var ens Ensemble
	if e.cfg.KeepModels {
		ens = NewEnsemble(totalRounds, cols)
	}

	sel := newNeighborSelector(e.cfg.NNearestColumns, e.rng)
	samples := make([][]float64, 0, e.cfg.NImputations)

	start := time.Now()
	for round := 0; round < totalRounds; round++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sel.refresh(work)

		roundStart := time.Now()
		for _, c := range order {
			if msk.missingCount(c) == 0 {
				continue
			}

			preds := sel.predictors(c, cols)
			mdl, err := e.imputeColumn(work, msk, c, preds)
			if err != nil {
				e.logger.Errorf("round %d column %d failed: %v", round, c, err)
				return nil, fmt.Errorf("round %d column %d: %w", round, c, err)
			}
			if ens != nil {
				ens[round][c] = mdl
			}
		}

		if round >= e.cfg.NBurnIn {
			samples = append(samples, snapshotMissing(work, msk))
		}

		e.metrics.RecordRound(round, time.Since(roundStart))
		e.logger.Infof("round %d/%d (%s) done, elapsed %s",
			round+1, totalRounds, e.phaseOf(round), time.Since(start).Round(time.Millisecond))
	}

	res := &Result{
		Completed: aggregate(orig, msk, samples).toRows(),
		Samples:   samples,
		Positions: msk.positions(),
	}
	if e.cfg.KeepModels {
		res.State = &State{
			Config:     e.cfg,
			Cols:       cols,
			VisitOrder: order,
			InitValues: initValues,
			Models:     ens,
		}
	}
	return res, nil
}

// initialFill seeds the missing cells of each column with a single value
// computed from that column's observed data, visiting columns in visit
// order so the random stream's draw order stays well defined.
func (e *Engine) initialFill(work *matrix, msk *mask, order []int) ([]float64, error) {
	initValues := make([]float64, msk.cols)
	for _, c := range order {
		if msk.missingCount(c) == 0 {
			continue
		}

		observed := work.gatherColumn(msk.observedRows(c), c)
		v, err := fill.InitValue(observed, e.cfg.FillMethod, e.rng)
		if err != nil {
			return nil, err
		}

		initValues[c] = v
		col := work.col(c)
		for _, r := range msk.missingRows(c) {
			col[r] = v
		}
	}
	return initValues, nil
}

func (e *Engine) phaseOf(round int) string {
	if round < e.cfg.NBurnIn {
		return "burn-in"
	}
	return "sampling"
}
