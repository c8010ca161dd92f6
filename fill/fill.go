// Package fill implements the initial-fill and clipping collaborator of the
// imputation engine: per-column seed values computed from observed data,
// range clipping, and pre-flight input validation.
package fill

import (
	"fmt"
	"math"
	"sort"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
)

// Method selects how missing cells are seeded before the first round.
type Method int

const (
	// MethodMean seeds missing cells with the mean of the observed values.
	MethodMean Method = iota

	// MethodMedian seeds missing cells with the median of the observed values.
	MethodMedian

	// MethodRandom seeds missing cells with a single value drawn uniformly
	// from the observed values of the column.
	MethodRandom
)

// ParseMethod maps the textual configuration value to a Method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "mean":
		return MethodMean, nil
	case "median":
		return MethodMedian, nil
	case "random":
		return MethodRandom, nil
	default:
		return 0, &ErrUnknownMethod{Value: s}
	}
}

func (m Method) String() string {
	switch m {
	case MethodMean:
		return "mean"
	case MethodMedian:
		return "median"
	case MethodRandom:
		return "random"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// Valid reports whether m is one of the defined methods.
func (m Method) Valid() bool {
	return m == MethodMean || m == MethodMedian || m == MethodRandom
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, &ErrUnknownMethod{Value: m.String()}
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Method) UnmarshalText(text []byte) error {
	parsed, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// InitValue computes the seed value for one column from its observed values.
// The observed slice must be non-empty; all-missing columns are rejected by
// Validate before any seeding happens.
//
// MethodRandom consumes exactly one draw from rng; the other methods consume
// none, keeping the random stream's draw order independent of the data.
func InitValue(observed []float64, method Method, rng *rand.Rand) (float64, error) {
	if len(observed) == 0 {
		return 0, &ErrAllMissingColumn{Column: -1}
	}

	switch method {
	case MethodMean:
		return stat.Mean(observed, nil), nil
	case MethodMedian:
		sorted := make([]float64, len(observed))
		copy(sorted, observed)
		sort.Float64s(sorted)
		return stat.Quantile(0.5, stat.Empirical, sorted, nil), nil
	case MethodRandom:
		return observed[rng.Intn(len(observed))], nil
	default:
		return 0, &ErrUnknownMethod{Value: method.String()}
	}
}

// Clip bounds v to [min, max]. A NaN bound is treated as unbounded on that
// side.
func Clip(v, min, max float64) float64 {
	if !math.IsNaN(min) && v < min {
		return min
	}
	if !math.IsNaN(max) && v > max {
		return max
	}
	return v
}

// ClipSlice clips every element of vs in place.
func ClipSlice(vs []float64, min, max float64) {
	for i, v := range vs {
		vs[i] = Clip(v, min, max)
	}
}

// Validate checks that X is a non-empty rectangular matrix and that no row
// or column is entirely missing. It returns the dimensions on success.
// Missing entries are NaN.
func Validate(X [][]float64) (rows, cols int, err error) {
	rows = len(X)
	if rows == 0 {
		return 0, 0, ErrNotTabular
	}
	cols = len(X[0])
	if cols == 0 {
		return 0, 0, ErrNotTabular
	}
	for _, row := range X {
		if len(row) != cols {
			return 0, 0, ErrNotTabular
		}
	}

	colObserved := make([]bool, cols)
	for i, row := range X {
		rowObserved := false
		for j, v := range row {
			if !math.IsNaN(v) {
				rowObserved = true
				colObserved[j] = true
			}
		}
		if !rowObserved {
			return 0, 0, &ErrAllMissingRow{Row: i}
		}
	}
	for j, ok := range colObserved {
		if !ok {
			return 0, 0, &ErrAllMissingColumn{Column: j}
		}
	}

	return rows, cols, nil
}
