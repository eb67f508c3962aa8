package core

import (
	"errors"
	"fmt"
)

// Errors returned by shape checks.
var (
	ErrEmptyRow  = errors.New("core: empty row")
	ErrRaggedRow = errors.New("core: rows differ in length")
)

// Clone returns a copy of src. A nil input yields nil.
func Clone(src []float64) []float64 {
	if src == nil {
		return nil
	}
	out := make([]float64, len(src))
	copy(out, src)
	return out
}

// CloneRows deep-copies a row-major matrix. Every row of the result is
// backed by a single contiguous allocation.
func CloneRows(src [][]float64) [][]float64 {
	if src == nil {
		return nil
	}

	total := 0
	for _, row := range src {
		total += len(row)
	}

	backing := make([]float64, total)
	out := make([][]float64, len(src))
	off := 0
	for i, row := range src {
		n := copy(backing[off:], row)
		out[i] = backing[off : off+n : off+n]
		off += n
	}
	return out
}

// RowLength returns the common length of all rows.
// Returns ErrEmptyRow for a zero-length row and ErrRaggedRow when two rows
// disagree. An empty matrix has length 0 and no error.
func RowLength(rows [][]float64) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	n := len(rows[0])
	for i, row := range rows {
		if len(row) == 0 {
			return 0, fmt.Errorf("%w: row %d", ErrEmptyRow, i)
		}
		if len(row) != n {
			return 0, fmt.Errorf("%w: row %d has %d values, want %d", ErrRaggedRow, i, len(row), n)
		}
	}
	return n, nil
}

// AppendRows returns dst followed by deep copies of src, never sharing
// storage with either argument.
func AppendRows(dst, src [][]float64) [][]float64 {
	out := make([][]float64, 0, len(dst)+len(src))
	out = append(out, CloneRows(dst)...)
	return append(out, CloneRows(src)...)
}

// Concat returns a new slice holding a followed by b.
func Concat(a, b []float64) []float64 {
	out := make([]float64, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
