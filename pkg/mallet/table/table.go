package table

import "errors"

var (
	ErrIndexOutOfRange = errors.New("table: index out of range")
	ErrBadShape        = errors.New("table: non-positive dimension not allowed")
)

// Dense is a labeled float64 matrix. The underlying storage is a
// single slice in row major order, i.e. the (i*ncol + j)-th element
// of the data slice is the [i, j]-th element of the matrix.
type Dense struct {
	rowLabels []string
	colLabels []string
	data      []float64
}

// NewDense creates a zero-filled Dense with the given row and column
// labels. Panics if either dimension is zero.
func NewDense(rowLabels, colLabels []string) *Dense {
	if len(rowLabels) == 0 || len(colLabels) == 0 {
		panic(ErrBadShape)
	}
	return &Dense{
		rowLabels: append([]string(nil), rowLabels...),
		colLabels: append([]string(nil), colLabels...),
		data:      make([]float64, len(rowLabels)*len(colLabels)),
	}
}

// Shape returns (rows, cols).
func (d *Dense) Shape() (int, int) {
	return len(d.rowLabels), len(d.colLabels)
}

// At returns the [r, c]-th element.
func (d *Dense) At(r, c int) float64 {
	if r < 0 || r >= len(d.rowLabels) || c < 0 || c >= len(d.colLabels) {
		panic(ErrIndexOutOfRange)
	}
	return d.data[r*len(d.colLabels)+c]
}

// Set writes val to the [r, c]-th element.
func (d *Dense) Set(r, c int, val float64) {
	if r < 0 || r >= len(d.rowLabels) || c < 0 || c >= len(d.colLabels) {
		panic(ErrIndexOutOfRange)
	}
	d.data[r*len(d.colLabels)+c] = val
}

// RowLabels returns the row labels in order.
func (d *Dense) RowLabels() []string {
	return append([]string(nil), d.rowLabels...)
}

// ColLabels returns the column labels in order.
func (d *Dense) ColLabels() []string {
	return append([]string(nil), d.colLabels...)
}

// RowIndex returns the position of the row with the given label, or -1.
func (d *Dense) RowIndex(label string) int {
	for i, l := range d.rowLabels {
		if l == label {
			return i
		}
	}
	return -1
}

// Row returns a copy of the r-th row.
func (d *Dense) Row(r int) []float64 {
	if r < 0 || r >= len(d.rowLabels) {
		panic(ErrIndexOutOfRange)
	}
	row := make([]float64, len(d.colLabels))
	copy(row, d.data[r*len(d.colLabels):(r+1)*len(d.colLabels)])
	return row
}

// Transpose returns a new Dense with rows and columns swapped.
func (d *Dense) Transpose() *Dense {
	t := NewDense(d.colLabels, d.rowLabels)
	for r := range d.rowLabels {
		for c := range d.colLabels {
			t.Set(c, r, d.At(r, c))
		}
	}
	return t
}
