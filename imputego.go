package imputego

import (
	"bytes"
	"context"
	"io"
	"math"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/imputego/blobstore"
	"github.com/hupe1980/imputego/codec"
	"github.com/hupe1980/imputego/engine"
	"github.com/hupe1980/imputego/model"
)

// seedMix spreads a base seed across derived per-row streams.
const seedMix = 0x9E3779B97F4A7C15

// Imputer fills missing entries in numeric tables by chained equations:
// each column with missing data is repeatedly regressed against the other
// columns, replacement values are sampled, and several sampled completions
// are averaged. Missing entries are NaN.
//
// An Imputer is safe for concurrent use: every Complete call owns its
// working state, and the retained model state is guarded.
type Imputer struct {
	opts    Options
	factory model.Factory

	mu    sync.Mutex
	state *engine.State
}

// New creates an Imputer around the given model factory. All configuration
// is validated here; nothing fails lazily at sampling time.
func New(factory model.Factory, optFns ...func(*Options)) (*Imputer, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = NoopLogger()
	}
	if opts.Metrics == nil {
		opts.Metrics = NoopMetricsCollector{}
	}

	if !opts.Compression.Valid() {
		return nil, translateError(&engine.ErrInvalidConfig{Param: "compression", Value: opts.Compression.String()})
	}

	// Building a throwaway engine validates config and factory eagerly.
	if _, err := engine.New(opts.config(), factory); err != nil {
		return nil, translateError(err)
	}

	return &Imputer{
		opts:    opts,
		factory: factory,
	}, nil
}

func (imp *Imputer) newEngine() (*engine.Engine, error) {
	return engine.New(
		imp.opts.config(),
		imp.factory,
		engine.WithLogger(engineLogger{l: imp.opts.Logger}),
		engine.WithMetrics(metricsObserver{mc: imp.opts.Metrics}),
	)
}

// Complete returns a copy of X with every missing cell replaced by the mean
// of its post-burn-in posterior samples. Observed cells pass through
// unchanged; the output shape equals the input shape.
//
// With model retention enabled, the run's fitted state is kept on the
// Imputer for SaveModels and CompleteRow.
func (imp *Imputer) Complete(ctx context.Context, X [][]float64) ([][]float64, error) {
	start := time.Now()

	res, err := imp.run(ctx, X)

	duration := time.Since(start)
	imp.opts.Metrics.RecordComplete(duration, err)
	if err != nil {
		imp.opts.Logger.LogComplete(len(X), 0, 0, duration, err)
		return nil, translateError(err)
	}

	imp.opts.Logger.LogComplete(len(X), len(res.Completed[0]), len(res.Positions), duration, nil)
	return res.Completed, nil
}

// MultipleResult carries the raw multiple-imputation output: one vector of
// missing-cell values per sampling round, plus the cell positions they map
// to.
type MultipleResult struct {
	// Samples has length n_imputations; each entry holds one value per
	// missing cell, in Positions order.
	Samples [][]float64

	// Positions lists the missing cells as [row, col], column-major.
	Positions [][2]int
}

// MultipleImputations runs the chain and returns the collected post-burn-in
// samples instead of their average. Useful for pooling analyses that need
// between-imputation variance.
func (imp *Imputer) MultipleImputations(ctx context.Context, X [][]float64) (*MultipleResult, error) {
	res, err := imp.run(ctx, X)
	if err != nil {
		return nil, translateError(err)
	}
	return &MultipleResult{Samples: res.Samples, Positions: res.Positions}, nil
}

func (imp *Imputer) run(ctx context.Context, X [][]float64) (*engine.Result, error) {
	eng, err := imp.newEngine()
	if err != nil {
		return nil, err
	}

	res, err := eng.Run(ctx, X)
	if err != nil {
		return nil, err
	}

	if res.State != nil {
		imp.mu.Lock()
		imp.state = res.State
		imp.mu.Unlock()
	}
	return res, nil
}

// HasModels reports whether retained or loaded model state is available for
// row completion and persistence.
func (imp *Imputer) HasModels() bool {
	imp.mu.Lock()
	defer imp.mu.Unlock()
	return imp.state != nil
}

func (imp *Imputer) currentState() (*engine.State, error) {
	imp.mu.Lock()
	defer imp.mu.Unlock()
	if imp.state == nil {
		return nil, engine.ErrNoStoredModels
	}
	return imp.state, nil
}

// CompleteRow completes a single new record out-of-sample by replaying the
// retained ensemble; no model is refitted. The optional seed reseeds the
// random stream for reproducible replay.
//
// Requires a prior retained run (or LoadModels) with posterior sampling;
// PMM-trained state is rejected.
func (imp *Imputer) CompleteRow(ctx context.Context, row []float64, seed ...uint64) ([]float64, error) {
	start := time.Now()
	out, err := imp.completeRow(ctx, row, seed...)
	duration := time.Since(start)

	imp.opts.Metrics.RecordRowComplete(duration, err)
	imp.opts.Logger.LogRowComplete(countMissing(row), duration, err)
	if err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

func (imp *Imputer) completeRow(ctx context.Context, row []float64, seed ...uint64) ([]float64, error) {
	state, err := imp.currentState()
	if err != nil {
		return nil, err
	}

	rc, err := engine.NewRowCompleter(state)
	if err != nil {
		return nil, err
	}
	return rc.Complete(ctx, row, seed...)
}

// CompleteRows completes many independent rows concurrently against the
// same retained state. Each row gets its own replay stream; with a
// configured seed the result is deterministic and independent of
// scheduling order.
//
// Replay calls PredictDist on the shared fitted models from multiple
// goroutines; implementations must keep it free of receiver mutation, as
// the model contract requires.
func (imp *Imputer) CompleteRows(ctx context.Context, rows [][]float64) ([][]float64, error) {
	state, err := imp.currentState()
	if err != nil {
		return nil, translateError(err)
	}

	out := make([][]float64, len(rows))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, row := range rows {
		i, row := i, row
		g.Go(func() error {
			rc, err := engine.NewRowCompleter(state)
			if err != nil {
				return err
			}

			var completed []float64
			if imp.opts.Seed != nil {
				derived := *imp.opts.Seed ^ (seedMix * (uint64(i) + 1))
				completed, err = rc.Complete(ctx, row, derived)
			} else {
				completed, err = rc.Complete(ctx, row)
			}
			if err != nil {
				return err
			}

			out[i] = completed
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

// SaveModels writes the retained run state (model ensemble, visit order,
// init values, configuration) to w in the snapshot format. Model
// implementations must be registered with encoding/gob.
func (imp *Imputer) SaveModels(w io.Writer) error {
	state, err := imp.currentState()
	if err != nil {
		return translateError(err)
	}
	if err := engine.SaveState(w, state, codec.Default, imp.opts.Compression); err != nil {
		return translateError(err)
	}
	return nil
}

// LoadModels replaces the Imputer's retained state with a snapshot
// previously written by SaveModels, enabling row completion without ever
// running Complete in this process.
func (imp *Imputer) LoadModels(r io.Reader) error {
	state, err := engine.LoadState(r)
	if err != nil {
		return translateError(err)
	}

	imp.mu.Lock()
	imp.state = state
	imp.mu.Unlock()
	return nil
}

// SaveModelsToStore persists the retained run state as a named blob.
func (imp *Imputer) SaveModelsToStore(ctx context.Context, bs blobstore.BlobStore, name string) error {
	var buf bytes.Buffer
	if err := imp.SaveModels(&buf); err != nil {
		imp.opts.Logger.LogSnapshot(name, err)
		return err
	}

	err := bs.Put(ctx, name, buf.Bytes())
	imp.opts.Logger.LogSnapshot(name, err)
	return err
}

// LoadModelsFromStore loads a named blob written by SaveModelsToStore.
func (imp *Imputer) LoadModelsFromStore(ctx context.Context, bs blobstore.BlobStore, name string) error {
	blob, err := bs.Open(ctx, name)
	if err != nil {
		return err
	}
	defer blob.Close()

	data, err := blobstore.ReadAll(blob)
	if err != nil {
		return err
	}
	return imp.LoadModels(bytes.NewReader(data))
}

func countMissing(row []float64) int {
	n := 0
	for _, v := range row {
		if math.IsNaN(v) {
			n++
		}
	}
	return n
}
