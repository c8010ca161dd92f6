package engine

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/hupe1980/imputego/fill"
)

// RowCompleter replays a retained model ensemble to complete single new
// records out-of-sample, without refitting anything. Each completer owns
// its random stream; use one completer per goroutine.
type RowCompleter struct {
	state *State
	rng   *rand.Rand
}

// NewRowCompleter validates the stored state and builds a completer.
//
// Replay requires posterior sampling: PMM copies values from an observed-row
// population that a lone row does not have, so a PMM-trained state is
// rejected with a configuration error before any computation. A state
// trained with an active predictor-column cap is rejected the same way:
// its models were fitted on per-column predictor subsets that the stored
// state does not record, while replay always feeds all other columns.
func NewRowCompleter(state *State) (*RowCompleter, error) {
	if state == nil || state.Models == nil {
		return nil, ErrNoStoredModels
	}
	if state.Config.ImputeType != ImputePosterior {
		return nil, &ErrInvalidConfig{
			Param: "impute_type",
			Value: fmt.Sprintf("%s (row completion requires %s)", state.Config.ImputeType, ImputePosterior),
		}
	}
	if n := state.Config.NNearestColumns; n > 0 && state.Cols > n {
		return nil, &ErrInvalidConfig{
			Param: "n_nearest_columns",
			Value: fmt.Sprintf("%d (row completion requires all-column predictors)", n),
		}
	}
	if len(state.VisitOrder) != state.Cols || len(state.InitValues) != state.Cols {
		return nil, ErrNoStoredModels
	}

	return &RowCompleter{
		state: state,
		rng:   rand.New(rand.NewSource(seedOf(state.Config))),
	}, nil
}

// Complete fills the missing entries of row using the stored ensemble. The
// optional seed reseeds the random stream before replay; without it,
// repeated calls advance the same stream and are not reproducible.
//
// A row with no missing entries is returned as a copy without invoking any
// model.
func (rc *RowCompleter) Complete(ctx context.Context, row []float64, seed ...uint64) ([]float64, error) {
	if len(seed) > 0 {
		rc.rng = rand.New(rand.NewSource(seed[0]))
	}

	st := rc.state
	if len(row) != st.Cols {
		return nil, &ErrDimensionMismatch{Expected: st.Cols, Actual: len(row)}
	}

	out := make([]float64, len(row))
	copy(out, row)

	missing := make([]bool, st.Cols)
	nMissing := 0
	for c, v := range row {
		if math.IsNaN(v) {
			missing[c] = true
			nMissing++
		}
	}
	if nMissing == 0 {
		return out, nil
	}

	// Seed from the stored per-column init values; a single row cannot
	// provide its own statistics.
	filled := make([]float64, len(row))
	copy(filled, row)
	for _, c := range st.VisitOrder {
		if missing[c] {
			filled[c] = st.InitValues[c]
		}
	}

	cfg := st.Config
	minB, maxB := cfg.minBound(), cfg.maxBound()
	totalRounds := cfg.rounds()

	sums := make([]float64, st.Cols)

	for m := 0; m < totalRounds; m++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for _, c := range st.VisitOrder {
			if !missing[c] {
				continue
			}

			mdl := st.Models[m][c]
			if mdl == nil {
				return nil, fmt.Errorf("round %d column %d: %w", m, c, ErrModelNotFitted)
			}

			others := make([]float64, 0, st.Cols-1)
			for j := 0; j < st.Cols; j++ {
				if j != c {
					others = append(others, filled[j])
				}
			}
			x := mat.NewDense(1, st.Cols-1, others)

			means, variances, err := mdl.PredictDist(x)
			if err != nil {
				return nil, fmt.Errorf("round %d column %d: predict_dist: %w", m, c, err)
			}
			if len(means) != 1 || len(variances) != 1 {
				return nil, fmt.Errorf("round %d column %d: predict_dist returned %d values for one row", m, c, len(means))
			}

			sigma := math.Sqrt(math.Max(variances[0], 0))
			v := distuv.Normal{Mu: means[0], Sigma: sigma, Src: rc.rng}.Rand()
			filled[c] = fill.Clip(v, minB, maxB)
		}

		if m >= cfg.NBurnIn {
			for c := range sums {
				if missing[c] {
					sums[c] += filled[c]
				}
			}
		}
	}

	n := float64(cfg.NImputations)
	for c := range out {
		if missing[c] {
			out[c] = sums[c] / n
		}
	}
	return out, nil
}
