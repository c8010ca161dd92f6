package engine

import (
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"gonum.org/v1/gonum/mat"
)

// matrix is a column-contiguous dense float64 matrix. The engine mutates it
// in place round by round, one column at a time, so a column-major layout
// keeps the hot accesses sequential.
type matrix struct {
	rows, cols int
	data       []float64 // data[c*rows+r]
}

func newMatrix(X [][]float64, rows, cols int) *matrix {
	m := &matrix{
		rows: rows,
		cols: cols,
		data: make([]float64, rows*cols),
	}
	for r, row := range X {
		for c, v := range row {
			m.data[c*rows+r] = v
		}
	}
	return m
}

func (m *matrix) at(r, c int) float64 { return m.data[c*m.rows+r] }

func (m *matrix) set(r, c int, v float64) { m.data[c*m.rows+r] = v }

// col returns the backing slice of column c. Mutations write through.
func (m *matrix) col(c int) []float64 {
	return m.data[c*m.rows : (c+1)*m.rows]
}

func (m *matrix) clone() *matrix {
	out := &matrix{rows: m.rows, cols: m.cols, data: make([]float64, len(m.data))}
	copy(out.data, m.data)
	return out
}

func (m *matrix) toRows() [][]float64 {
	out := make([][]float64, m.rows)
	for r := range out {
		row := make([]float64, m.cols)
		for c := 0; c < m.cols; c++ {
			row[c] = m.at(r, c)
		}
		out[r] = row
	}
	return out
}

// gather copies the (rowIdx × colIdx) submatrix into a row-major Dense for
// the model contract.
func (m *matrix) gather(rowIdx, colIdx []int) *mat.Dense {
	data := make([]float64, len(rowIdx)*len(colIdx))
	for i, r := range rowIdx {
		for j, c := range colIdx {
			data[i*len(colIdx)+j] = m.at(r, c)
		}
	}
	return mat.NewDense(len(rowIdx), len(colIdx), data)
}

// gatherColumn copies the values of column c at the given rows.
func (m *matrix) gatherColumn(rowIdx []int, c int) []float64 {
	out := make([]float64, len(rowIdx))
	col := m.col(c)
	for i, r := range rowIdx {
		out[i] = col[r]
	}
	return out
}

// mask records which cells were missing in the input. It is fixed for the
// whole run; the per-column missing-row sets are roaring bitmaps with the
// index slices materialized once up front.
type mask struct {
	rows, cols int
	missing    []*roaring.Bitmap
	missRows   [][]int
	obsRows    [][]int
	total      int
}

func newMask(m *matrix) *mask {
	k := &mask{
		rows:     m.rows,
		cols:     m.cols,
		missing:  make([]*roaring.Bitmap, m.cols),
		missRows: make([][]int, m.cols),
		obsRows:  make([][]int, m.cols),
	}
	for c := 0; c < m.cols; c++ {
		bm := roaring.New()
		col := m.col(c)
		for r, v := range col {
			if math.IsNaN(v) {
				bm.Add(uint32(r))
			}
		}
		k.missing[c] = bm

		miss := make([]int, 0, bm.GetCardinality())
		obs := make([]int, 0, m.rows-int(bm.GetCardinality()))
		for r := 0; r < m.rows; r++ {
			if bm.Contains(uint32(r)) {
				miss = append(miss, r)
			} else {
				obs = append(obs, r)
			}
		}
		k.missRows[c] = miss
		k.obsRows[c] = obs
		k.total += len(miss)
	}
	return k
}

func (k *mask) missingCount(c int) int { return len(k.missRows[c]) }

func (k *mask) missingRows(c int) []int { return k.missRows[c] }

func (k *mask) observedRows(c int) []int { return k.obsRows[c] }

func (k *mask) isMissing(r, c int) bool { return k.missing[c].Contains(uint32(r)) }

// positions lists every missing cell as [row, col] in column-major order:
// column ascending, row ascending within a column. Sample snapshots and the
// aggregator both follow this order.
func (k *mask) positions() [][2]int {
	out := make([][2]int, 0, k.total)
	for c := 0; c < k.cols; c++ {
		for _, r := range k.missRows[c] {
			out = append(out, [2]int{r, c})
		}
	}
	return out
}

// snapshotMissing captures the current values of all missing cells in
// positions() order.
func snapshotMissing(m *matrix, k *mask) []float64 {
	out := make([]float64, 0, k.total)
	for c := 0; c < k.cols; c++ {
		col := m.col(c)
		for _, r := range k.missRows[c] {
			out = append(out, col[r])
		}
	}
	return out
}
