package engine

import (
	"fmt"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/hupe1980/imputego/fill"
	"github.com/hupe1980/imputego/model"
)

// imputeColumn performs the conditional stochastic step for one target
// column: fit a fresh model on the observed rows against the given
// predictors, sample replacement values per the configured impute type,
// clip, and write only the missing positions back into the working matrix.
//
// The fit uses the current working matrix, which already reflects updates
// made to earlier-visited columns within the same round.
func (e *Engine) imputeColumn(work *matrix, k *mask, col int, preds []int) (model.ColumnModel, error) {
	obs := k.observedRows(col)
	miss := k.missingRows(col)

	yObs := work.gatherColumn(obs, col)
	xObs := work.gather(obs, preds)

	mdl := e.factory(e.rng)
	fitStart := time.Now()
	if err := mdl.Fit(xObs, yObs); err != nil {
		return nil, fmt.Errorf("fit: %w", err)
	}
	e.metrics.RecordFit(col, time.Since(fitStart))

	xMiss := work.gather(miss, preds)

	var (
		imputed []float64
		err     error
	)
	switch e.cfg.ImputeType {
	case ImputePMM:
		imputed, err = e.samplePMM(mdl, xMiss, xObs, yObs)
	default:
		imputed, err = e.samplePosterior(mdl, xMiss)
	}
	if err != nil {
		return nil, err
	}
	if len(imputed) != len(miss) {
		return nil, fmt.Errorf("model returned %d values for %d missing rows", len(imputed), len(miss))
	}

	fill.ClipSlice(imputed, e.cfg.minBound(), e.cfg.maxBound())

	for i, r := range miss {
		work.set(r, col, imputed[i])
	}
	return mdl, nil
}

// samplePosterior draws each missing value independently from
// Normal(mean, sqrt(variance)) of the model's predictive distribution.
func (e *Engine) samplePosterior(mdl model.ColumnModel, xMiss mat.Matrix) ([]float64, error) {
	means, variances, err := mdl.PredictDist(xMiss)
	if err != nil {
		return nil, fmt.Errorf("predict_dist: %w", err)
	}
	if len(means) != len(variances) {
		return nil, fmt.Errorf("predict_dist returned %d means and %d variances", len(means), len(variances))
	}

	out := make([]float64, len(means))
	for i := range means {
		sigma := math.Sqrt(math.Max(variances[i], 0))
		out[i] = distuv.Normal{Mu: means[i], Sigma: sigma, Src: e.rng}.Rand()
	}
	return out, nil
}

// samplePMM imputes each missing row by copying the actual observed value
// of one of its k nearest observed-row predictions, chosen uniformly at
// random. Every value produced here is a real previously observed value of
// the target column.
func (e *Engine) samplePMM(mdl model.ColumnModel, xMiss, xObs mat.Matrix, yObs []float64) ([]float64, error) {
	predMiss, err := mdl.Predict(xMiss, true)
	if err != nil {
		return nil, fmt.Errorf("predict (random draw): %w", err)
	}
	predObs, err := mdl.Predict(xObs, false)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}
	if len(predObs) != len(yObs) {
		return nil, fmt.Errorf("predict returned %d values for %d observed rows", len(predObs), len(yObs))
	}

	k := e.cfg.NPMMNeighbors
	if k > len(predObs)-1 {
		k = len(predObs) - 1
	}
	if k < 1 {
		// A single observed row has no neighborhood to shrink.
		k = 1
	}

	out := make([]float64, len(predMiss))
	idx := make([]int, len(predObs))
	for i, p := range predMiss {
		for j := range idx {
			idx[j] = j
		}
		sort.Slice(idx, func(a, b int) bool {
			return math.Abs(predObs[idx[a]]-p) < math.Abs(predObs[idx[b]]-p)
		})
		pick := idx[e.rng.Intn(k)]
		out[i] = yObs[pick]
	}
	return out, nil
}
