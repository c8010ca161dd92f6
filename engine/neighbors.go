package engine

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
)

// correlationFloor is added to every selection weight so that each column
// keeps a nonzero long-run chance of being drawn as a predictor.
const correlationFloor = 1e-7

// neighborSelector picks predictor columns for a target column. Below the
// configured cap every other column is used; above it a fixed-size subset is
// drawn without replacement, weighted by absolute Pearson correlation
// against the current working matrix.
//
// The correlation matrix is refreshed once per round, not per column, so
// within a round it mixes already-updated and not-yet-updated columns. That
// staleness matches the chain's defined sampling statistics and must not be
// "fixed" by per-column recomputation.
type neighborSelector struct {
	limit   int // 0 = use all columns
	rng     *rand.Rand
	absCorr [][]float64
}

func newNeighborSelector(limit int, rng *rand.Rand) *neighborSelector {
	return &neighborSelector{limit: limit, rng: rng}
}

func (s *neighborSelector) active(cols int) bool {
	return s.limit > 0 && cols > s.limit
}

// refresh recomputes the absolute correlation matrix from the current
// working matrix. A no-op when the cap is inactive.
func (s *neighborSelector) refresh(m *matrix) {
	if !s.active(m.cols) {
		s.absCorr = nil
		return
	}

	if s.absCorr == nil {
		s.absCorr = make([][]float64, m.cols)
		for i := range s.absCorr {
			s.absCorr[i] = make([]float64, m.cols)
		}
	}

	for i := 0; i < m.cols; i++ {
		s.absCorr[i][i] = 1
		for j := i + 1; j < m.cols; j++ {
			r := stat.Correlation(m.col(i), m.col(j), nil)
			if math.IsNaN(r) {
				// Constant column; carries no signal.
				r = 0
			}
			a := math.Abs(r)
			s.absCorr[i][j] = a
			s.absCorr[j][i] = a
		}
	}
}

// predictors returns the predictor column indices for target column c.
func (s *neighborSelector) predictors(c, cols int) []int {
	if !s.active(cols) {
		out := make([]int, 0, cols-1)
		for i := 0; i < cols; i++ {
			if i != c {
				out = append(out, i)
			}
		}
		return out
	}

	weights := make([]float64, cols)
	for i := range weights {
		weights[i] = s.absCorr[c][i] + correlationFloor
	}
	weights[c] = 0

	return s.sampleWithoutReplacement(weights, s.limit)
}

// sampleWithoutReplacement draws k distinct indices with probability
// proportional to the given weights. Drawn indices have their weight zeroed
// and the remainder renormalizes implicitly. The weights slice is consumed.
func (s *neighborSelector) sampleWithoutReplacement(weights []float64, k int) []int {
	total := 0.0
	for _, w := range weights {
		total += w
	}

	chosen := make([]int, 0, k)
	for len(chosen) < k {
		u := s.rng.Float64() * total
		pick := -1
		acc := 0.0
		for i, w := range weights {
			if w == 0 {
				continue
			}
			acc += w
			if u < acc {
				pick = i
				break
			}
		}
		if pick < 0 {
			// Float accumulation left u just past the final bucket.
			for i := len(weights) - 1; i >= 0; i-- {
				if weights[i] > 0 {
					pick = i
					break
				}
			}
		}

		chosen = append(chosen, pick)
		total -= weights[pick]
		weights[pick] = 0
	}
	return chosen
}
