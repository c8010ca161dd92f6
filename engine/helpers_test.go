package engine

import (
	"encoding/gob"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/hupe1980/imputego/model"
)

func init() {
	gob.Register(&meanModel{})
	gob.Register(&constModel{})
}

// meanModel is a minimal but honest ColumnModel: it predicts the fitted
// mean of the target with the sample variance as predictive variance.
type meanModel struct {
	Mean     float64
	Variance float64

	rng *rand.Rand
}

func meanFactory(rng *rand.Rand) model.ColumnModel {
	return &meanModel{rng: rng}
}

func (m *meanModel) Fit(_ mat.Matrix, y []float64) error {
	m.Mean = stat.Mean(y, nil)
	if len(y) > 1 {
		m.Variance = stat.Variance(y, nil)
	}
	return nil
}

func (m *meanModel) Predict(x mat.Matrix, randomDraw bool) ([]float64, error) {
	r, _ := x.Dims()
	out := make([]float64, r)
	for i := range out {
		out[i] = m.Mean
		if randomDraw && m.rng != nil {
			out[i] += 0.01 * m.rng.Float64()
		}
	}
	return out, nil
}

func (m *meanModel) PredictDist(x mat.Matrix) ([]float64, []float64, error) {
	r, _ := x.Dims()
	means := make([]float64, r)
	variances := make([]float64, r)
	for i := range means {
		means[i] = m.Mean
		variances[i] = m.Variance
	}
	return means, variances, nil
}

// constModel always predicts V with zero variance, so posterior draws are
// exactly V. Handy for pinning outputs.
type constModel struct {
	V float64
}

func constFactory(v float64) model.Factory {
	return func(*rand.Rand) model.ColumnModel {
		return &constModel{V: v}
	}
}

func (m *constModel) Fit(mat.Matrix, []float64) error { return nil }

func (m *constModel) Predict(x mat.Matrix, _ bool) ([]float64, error) {
	r, _ := x.Dims()
	out := make([]float64, r)
	for i := range out {
		out[i] = m.V
	}
	return out, nil
}

func (m *constModel) PredictDist(x mat.Matrix) ([]float64, []float64, error) {
	r, _ := x.Dims()
	means := make([]float64, r)
	for i := range means {
		means[i] = m.V
	}
	return means, make([]float64, r), nil
}

func f64ptr(v float64) *float64 { return &v }

func u64ptr(v uint64) *uint64 { return &v }
