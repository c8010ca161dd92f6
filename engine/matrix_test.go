package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrix(t *testing.T) {
	nan := math.NaN()

	m := newMatrix([][]float64{
		{1, 2, 3},
		{4, nan, 6},
	}, 2, 3)

	t.Run("Access", func(t *testing.T) {
		assert.Equal(t, 1.0, m.at(0, 0))
		assert.Equal(t, 6.0, m.at(1, 2))
		assert.True(t, math.IsNaN(m.at(1, 1)))

		m2 := m.clone()
		m2.set(1, 1, 5)
		assert.Equal(t, 5.0, m2.at(1, 1))
		assert.True(t, math.IsNaN(m.at(1, 1)), "clone must not alias")
	})

	t.Run("Col", func(t *testing.T) {
		col := m.col(2)
		assert.Equal(t, []float64{3, 6}, col)

		// col writes through
		m2 := m.clone()
		m2.col(0)[1] = 9
		assert.Equal(t, 9.0, m2.at(1, 0))
	})

	t.Run("ToRows", func(t *testing.T) {
		rows := m.clone().toRows()
		require.Len(t, rows, 2)
		assert.Equal(t, []float64{1, 2, 3}, rows[0])
		assert.Equal(t, 4.0, rows[1][0])
		assert.Equal(t, 6.0, rows[1][2])
	})

	t.Run("Gather", func(t *testing.T) {
		d := m.gather([]int{1, 0}, []int{2, 0})
		r, c := d.Dims()
		assert.Equal(t, 2, r)
		assert.Equal(t, 2, c)
		assert.Equal(t, 6.0, d.At(0, 0))
		assert.Equal(t, 4.0, d.At(0, 1))
		assert.Equal(t, 3.0, d.At(1, 0))
		assert.Equal(t, 1.0, d.At(1, 1))

		assert.Equal(t, []float64{3, 6}, m.gatherColumn([]int{0, 1}, 2))
	})
}

func TestMask(t *testing.T) {
	nan := math.NaN()

	m := newMatrix([][]float64{
		{nan, 2, nan},
		{4, nan, 6},
		{7, 8, nan},
	}, 3, 3)
	k := newMask(m)

	t.Run("Counts", func(t *testing.T) {
		assert.Equal(t, 1, k.missingCount(0))
		assert.Equal(t, 1, k.missingCount(1))
		assert.Equal(t, 2, k.missingCount(2))
		assert.Equal(t, 4, k.total)
	})

	t.Run("Rows", func(t *testing.T) {
		assert.Equal(t, []int{0}, k.missingRows(0))
		assert.Equal(t, []int{1, 2}, k.observedRows(0))
		assert.Equal(t, []int{0, 2}, k.missingRows(2))
		assert.Equal(t, []int{1}, k.observedRows(2))
		assert.True(t, k.isMissing(1, 1))
		assert.False(t, k.isMissing(2, 1))
	})

	t.Run("Positions", func(t *testing.T) {
		want := [][2]int{{0, 0}, {1, 1}, {0, 2}, {2, 2}}
		assert.Equal(t, want, k.positions())
	})

	t.Run("Snapshot", func(t *testing.T) {
		m2 := m.clone()
		m2.set(0, 0, 10)
		m2.set(1, 1, 20)
		m2.set(0, 2, 30)
		m2.set(2, 2, 40)
		assert.Equal(t, []float64{10, 20, 30, 40}, snapshotMissing(m2, k))
	})
}
