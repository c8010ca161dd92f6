package engine

import "github.com/hupe1980/imputego/model"

// Ensemble holds one fitted-model slot per (round, column) pair. A nil slot
// is the explicit "not fitted" sentinel: the column had no missing data that
// round, so no model was ever trained for it. Replaying through a nil slot
// is an error, never a silent fallback.
type Ensemble [][]model.ColumnModel

// NewEnsemble allocates an all-unfitted ensemble.
func NewEnsemble(rounds, cols int) Ensemble {
	e := make(Ensemble, rounds)
	for i := range e {
		e[i] = make([]model.ColumnModel, cols)
	}
	return e
}

// Rounds returns the number of round slots.
func (e Ensemble) Rounds() int { return len(e) }

// Cols returns the number of column slots per round.
func (e Ensemble) Cols() int {
	if len(e) == 0 {
		return 0
	}
	return len(e[0])
}

// Slot is a fitted (round, column) entry in its serialized form. Only
// fitted slots are persisted; nil slots are reconstructed on load.
type Slot struct {
	Round int
	Col   int
	Model model.ColumnModel
}

// slots flattens the fitted entries for persistence.
func (e Ensemble) slots() []Slot {
	var out []Slot
	for round, row := range e {
		for col, mdl := range row {
			if mdl != nil {
				out = append(out, Slot{Round: round, Col: col, Model: mdl})
			}
		}
	}
	return out
}

// State is everything a prior full-matrix run must retain to complete new
// rows out-of-sample without refitting: the originating configuration, the
// visit order, the per-column init seeds, and the fitted model ensemble.
type State struct {
	Config     Config
	Cols       int
	VisitOrder []int
	InitValues []float64
	Models     Ensemble
}
