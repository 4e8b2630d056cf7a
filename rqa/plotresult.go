package rqa

// RecurrencePlotResult is the fully materialised recurrence matrix: one byte
// per cell, row major, origin top left. Matrix[y*N+x] is nonzero iff the
// embedded vectors x and y recur.
type RecurrencePlotResult struct {
	Settings Settings
	Runtimes Runtimes
	N        int
	Matrix   []byte
}

// At reports whether cell (x, y) is a recurrence point.
func (r *RecurrencePlotResult) At(x, y int) bool {
	return r.Matrix[y*r.N+x] != 0
}
