package table

// Strings is a labeled table of string cells. Cells that were never
// written stay empty, so short input rows read back as gaps rather
// than errors.
type Strings struct {
	rowLabels []string
	colLabels []string
	cells     []string
}

// NewStrings creates an empty-celled Strings table with the given
// row and column labels. Panics if either dimension is zero.
func NewStrings(rowLabels, colLabels []string) *Strings {
	if len(rowLabels) == 0 || len(colLabels) == 0 {
		panic(ErrBadShape)
	}
	return &Strings{
		rowLabels: append([]string(nil), rowLabels...),
		colLabels: append([]string(nil), colLabels...),
		cells:     make([]string, len(rowLabels)*len(colLabels)),
	}
}

// Shape returns (rows, cols).
func (s *Strings) Shape() (int, int) {
	return len(s.rowLabels), len(s.colLabels)
}

// At returns the [r, c]-th cell.
func (s *Strings) At(r, c int) string {
	if r < 0 || r >= len(s.rowLabels) || c < 0 || c >= len(s.colLabels) {
		panic(ErrIndexOutOfRange)
	}
	return s.cells[r*len(s.colLabels)+c]
}

// Set writes val to the [r, c]-th cell.
func (s *Strings) Set(r, c int, val string) {
	if r < 0 || r >= len(s.rowLabels) || c < 0 || c >= len(s.colLabels) {
		panic(ErrIndexOutOfRange)
	}
	s.cells[r*len(s.colLabels)+c] = val
}

// RowLabels returns the row labels in order.
func (s *Strings) RowLabels() []string {
	return append([]string(nil), s.rowLabels...)
}

// ColLabels returns the column labels in order.
func (s *Strings) ColLabels() []string {
	return append([]string(nil), s.colLabels...)
}

// Row returns a copy of the r-th row.
func (s *Strings) Row(r int) []string {
	if r < 0 || r >= len(s.rowLabels) {
		panic(ErrIndexOutOfRange)
	}
	row := make([]string, len(s.colLabels))
	copy(row, s.cells[r*len(s.colLabels):(r+1)*len(s.colLabels)])
	return row
}
