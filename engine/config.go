package engine

import (
	"fmt"
	"math"

	"github.com/hupe1980/imputego/fill"
)

// VisitSequence selects the fixed per-run order in which columns are
// processed each round.
type VisitSequence int

const (
	// VisitMonotone orders columns by descending missing count.
	VisitMonotone VisitSequence = iota

	// VisitRoman is ascending column index.
	VisitRoman

	// VisitArabic is descending column index.
	VisitArabic

	// VisitRevMonotone orders columns by ascending missing count.
	VisitRevMonotone
)

// ParseVisitSequence maps the textual configuration value to a VisitSequence.
func ParseVisitSequence(s string) (VisitSequence, error) {
	switch s {
	case "monotone":
		return VisitMonotone, nil
	case "roman":
		return VisitRoman, nil
	case "arabic":
		return VisitArabic, nil
	case "revmonotone":
		return VisitRevMonotone, nil
	default:
		return 0, &ErrInvalidConfig{Param: "visit_sequence", Value: fmt.Sprintf("%q", s)}
	}
}

func (v VisitSequence) String() string {
	switch v {
	case VisitMonotone:
		return "monotone"
	case VisitRoman:
		return "roman"
	case VisitArabic:
		return "arabic"
	case VisitRevMonotone:
		return "revmonotone"
	default:
		return fmt.Sprintf("VisitSequence(%d)", int(v))
	}
}

// Valid reports whether v is one of the defined sequences.
func (v VisitSequence) Valid() bool {
	return v >= VisitMonotone && v <= VisitRevMonotone
}

// MarshalText implements encoding.TextMarshaler.
func (v VisitSequence) MarshalText() ([]byte, error) {
	if !v.Valid() {
		return nil, &ErrInvalidConfig{Param: "visit_sequence", Value: v.String()}
	}
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *VisitSequence) UnmarshalText(text []byte) error {
	parsed, err := ParseVisitSequence(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ImputeType selects how replacement values are sampled from a fitted model.
type ImputeType int

const (
	// ImputePosterior draws each missing value from the model's
	// posterior-predictive Normal(mean, sqrt(variance)). The textual form
	// is "col".
	ImputePosterior ImputeType = iota

	// ImputePMM applies predictive-mean matching: each missing value copies
	// the actual observed value of one of the k observed rows whose model
	// predictions lie nearest the missing row's stochastic prediction.
	ImputePMM
)

// ParseImputeType maps the textual configuration value to an ImputeType.
func ParseImputeType(s string) (ImputeType, error) {
	switch s {
	case "col":
		return ImputePosterior, nil
	case "pmm":
		return ImputePMM, nil
	default:
		return 0, &ErrInvalidConfig{Param: "impute_type", Value: fmt.Sprintf("%q", s)}
	}
}

func (t ImputeType) String() string {
	switch t {
	case ImputePosterior:
		return "col"
	case ImputePMM:
		return "pmm"
	default:
		return fmt.Sprintf("ImputeType(%d)", int(t))
	}
}

// Valid reports whether t is one of the defined impute types.
func (t ImputeType) Valid() bool {
	return t == ImputePosterior || t == ImputePMM
}

// MarshalText implements encoding.TextMarshaler.
func (t ImputeType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, &ErrInvalidConfig{Param: "impute_type", Value: t.String()}
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ImputeType) UnmarshalText(text []byte) error {
	parsed, err := ParseImputeType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Config holds the construction-time configuration of an imputation run.
// It is immutable once handed to New.
type Config struct {
	// VisitSequence is the column processing order. Default: VisitMonotone.
	VisitSequence VisitSequence `json:"visit_sequence"`

	// ImputeType selects the sampling algorithm. Default: ImputePosterior.
	ImputeType ImputeType `json:"impute_type"`

	// FillMethod seeds missing cells before the first round.
	// Default: fill.MethodMean.
	FillMethod fill.Method `json:"fill_method"`

	// NImputations is the number of post-burn-in sampling rounds that are
	// averaged into the result. Default: 100.
	NImputations int `json:"n_imputations"`

	// NBurnIn is the number of initial rounds discarded while the chain
	// stabilizes. Default: 10.
	NBurnIn int `json:"n_burn_in"`

	// NPMMNeighbors is the number of nearest observed-row predictions a
	// PMM draw chooses between. Default: 5.
	NPMMNeighbors int `json:"n_pmm_neighbors"`

	// NNearestColumns caps the number of predictor columns per target.
	// Columns are drawn with probability proportional to their absolute
	// Pearson correlation with the target. 0 means use all columns.
	NNearestColumns int `json:"n_nearest_columns"`

	// MinValue and MaxValue clip every imputed value. Nil means unbounded.
	MinValue *float64 `json:"min_value,omitempty"`
	MaxValue *float64 `json:"max_value,omitempty"`

	// Seed seeds the engine's owned random stream. Nil means a time-based
	// seed; results are then not reproducible.
	Seed *uint64 `json:"seed,omitempty"`

	// KeepModels retains every fitted model per (round, column) slot so
	// the run can be persisted and replayed for single-row completion.
	KeepModels bool `json:"keep_models"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		VisitSequence: VisitMonotone,
		ImputeType:    ImputePosterior,
		FillMethod:    fill.MethodMean,
		NImputations:  100,
		NBurnIn:       10,
		NPMMNeighbors: 5,
	}
}

// Validate rejects unknown enum values and inconsistent numeric settings.
func (c Config) Validate() error {
	if !c.VisitSequence.Valid() {
		return &ErrInvalidConfig{Param: "visit_sequence", Value: c.VisitSequence.String()}
	}
	if !c.ImputeType.Valid() {
		return &ErrInvalidConfig{Param: "impute_type", Value: c.ImputeType.String()}
	}
	if !c.FillMethod.Valid() {
		return &ErrInvalidConfig{Param: "fill_method", Value: c.FillMethod.String()}
	}
	if c.NImputations < 1 {
		return &ErrInvalidConfig{Param: "n_imputations", Value: fmt.Sprintf("%d", c.NImputations)}
	}
	if c.NBurnIn < 0 {
		return &ErrInvalidConfig{Param: "n_burn_in", Value: fmt.Sprintf("%d", c.NBurnIn)}
	}
	if c.NPMMNeighbors < 1 {
		return &ErrInvalidConfig{Param: "n_pmm_neighbors", Value: fmt.Sprintf("%d", c.NPMMNeighbors)}
	}
	if c.NNearestColumns < 0 {
		return &ErrInvalidConfig{Param: "n_nearest_columns", Value: fmt.Sprintf("%d", c.NNearestColumns)}
	}
	if c.MinValue != nil && c.MaxValue != nil && *c.MinValue > *c.MaxValue {
		return &ErrInvalidConfig{
			Param: "min_value/max_value",
			Value: fmt.Sprintf("min %v exceeds max %v", *c.MinValue, *c.MaxValue),
		}
	}
	return nil
}

// rounds is the total round count of a run.
func (c Config) rounds() int {
	return c.NBurnIn + c.NImputations
}

// minBound and maxBound convert the optional bounds to the NaN-means-
// unbounded form the fill package clips with.
func (c Config) minBound() float64 {
	if c.MinValue == nil {
		return math.NaN()
	}
	return *c.MinValue
}

func (c Config) maxBound() float64 {
	if c.MaxValue == nil {
		return math.NaN()
	}
	return *c.MaxValue
}
