package imputego

import (
	"github.com/hupe1980/imputego/engine"
	"github.com/hupe1980/imputego/fill"
)

// Re-exported configuration enums, so that typical callers only import the
// root package.
type (
	// VisitSequence selects the column processing order.
	VisitSequence = engine.VisitSequence

	// ImputeType selects the sampling algorithm.
	ImputeType = engine.ImputeType

	// FillMethod selects how missing cells are seeded before round one.
	FillMethod = fill.Method

	// Compression selects the snapshot body compression.
	Compression = engine.Compression
)

const (
	VisitMonotone    = engine.VisitMonotone
	VisitRoman       = engine.VisitRoman
	VisitArabic      = engine.VisitArabic
	VisitRevMonotone = engine.VisitRevMonotone

	ImputePosterior = engine.ImputePosterior
	ImputePMM       = engine.ImputePMM

	FillMean   = fill.MethodMean
	FillMedian = fill.MethodMedian
	FillRandom = fill.MethodRandom

	CompressionNone = engine.CompressionNone
	CompressionZstd = engine.CompressionZstd
	CompressionLZ4  = engine.CompressionLZ4
)

// Options configures an Imputer. Construction-time only; immutable
// afterwards.
type Options struct {
	// VisitSequence is the column processing order. Default: monotone
	// (descending missing count).
	VisitSequence VisitSequence

	// ImputeType selects posterior-predictive draws ("col") or predictive
	// mean matching ("pmm"). Default: posterior.
	ImputeType ImputeType

	// FillMethod seeds missing cells before the first round.
	// Default: mean.
	FillMethod FillMethod

	// NImputations is the number of post-burn-in rounds averaged into the
	// result. Default: 100.
	NImputations int

	// NBurnIn is the number of initial rounds discarded while the chain
	// stabilizes. Default: 10.
	NBurnIn int

	// NPMMNeighbors is the number of nearest observed predictions a PMM
	// draw chooses between. Default: 5.
	NPMMNeighbors int

	// NNearestColumns caps predictor columns per target; 0 means all.
	NNearestColumns int

	// MinValue / MaxValue clip every imputed value. Nil means unbounded.
	MinValue *float64
	MaxValue *float64

	// Seed seeds the imputer's owned random stream. Nil means a
	// time-based seed and non-reproducible results.
	Seed *uint64

	// KeepModels retains fitted models so runs can be persisted and
	// replayed for out-of-sample row completion. Default: false.
	KeepModels bool

	// Compression is applied to persisted snapshots.
	// Default: CompressionZstd.
	Compression Compression

	// Logger receives progress logs. Default: NoopLogger().
	Logger *Logger

	// Metrics receives operational metrics.
	// Default: NoopMetricsCollector.
	Metrics MetricsCollector
}

// DefaultOptions are the documented defaults.
var DefaultOptions = Options{
	VisitSequence: VisitMonotone,
	ImputeType:    ImputePosterior,
	FillMethod:    FillMean,
	NImputations:  100,
	NBurnIn:       10,
	NPMMNeighbors: 5,
	Compression:   CompressionZstd,
}

// WithVisitSequence sets the column processing order.
func WithVisitSequence(v VisitSequence) func(*Options) {
	return func(o *Options) {
		o.VisitSequence = v
	}
}

// WithImputeType selects the sampling algorithm.
func WithImputeType(t ImputeType) func(*Options) {
	return func(o *Options) {
		o.ImputeType = t
	}
}

// WithFillMethod selects the initial-fill strategy.
func WithFillMethod(m FillMethod) func(*Options) {
	return func(o *Options) {
		o.FillMethod = m
	}
}

// WithImputations sets the number of sampling rounds to average.
func WithImputations(n int) func(*Options) {
	return func(o *Options) {
		o.NImputations = n
	}
}

// WithBurnIn sets the number of discarded warm-up rounds.
func WithBurnIn(n int) func(*Options) {
	return func(o *Options) {
		o.NBurnIn = n
	}
}

// WithPMMNeighbors sets the PMM neighborhood size.
func WithPMMNeighbors(k int) func(*Options) {
	return func(o *Options) {
		o.NPMMNeighbors = k
	}
}

// WithNearestColumns caps the number of predictor columns per target.
// Useful on wide tables; predictors are then drawn with probability
// proportional to absolute Pearson correlation with the target.
func WithNearestColumns(n int) func(*Options) {
	return func(o *Options) {
		o.NNearestColumns = n
	}
}

// WithBounds clips every imputed value to [min, max].
func WithBounds(min, max float64) func(*Options) {
	return func(o *Options) {
		o.MinValue = &min
		o.MaxValue = &max
	}
}

// WithMinValue clips every imputed value from below.
func WithMinValue(min float64) func(*Options) {
	return func(o *Options) {
		o.MinValue = &min
	}
}

// WithMaxValue clips every imputed value from above.
func WithMaxValue(max float64) func(*Options) {
	return func(o *Options) {
		o.MaxValue = &max
	}
}

// WithSeed makes runs reproducible: a fixed seed plus identical
// configuration yields identical output.
func WithSeed(seed uint64) func(*Options) {
	return func(o *Options) {
		o.Seed = &seed
	}
}

// WithModelRetention retains every fitted model per (round, column) slot,
// enabling SaveModels and CompleteRow.
func WithModelRetention() func(*Options) {
	return func(o *Options) {
		o.KeepModels = true
	}
}

// WithCompression sets the snapshot body compression.
func WithCompression(c Compression) func(*Options) {
	return func(o *Options) {
		o.Compression = c
	}
}

// WithLogger sets the structured logger for progress reporting.
func WithLogger(l *Logger) func(*Options) {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(mc MetricsCollector) func(*Options) {
	return func(o *Options) {
		o.Metrics = mc
	}
}

func (o Options) config() engine.Config {
	return engine.Config{
		VisitSequence:   o.VisitSequence,
		ImputeType:      o.ImputeType,
		FillMethod:      o.FillMethod,
		NImputations:    o.NImputations,
		NBurnIn:         o.NBurnIn,
		NPMMNeighbors:   o.NPMMNeighbors,
		NNearestColumns: o.NNearestColumns,
		MinValue:        o.MinValue,
		MaxValue:        o.MaxValue,
		Seed:            o.Seed,
		KeepModels:      o.KeepModels,
	}
}
