package dataset

import (
	"fmt"

	"github.com/cwbudde/algo-curves/dsp/core"
)

// Shape tells how target values map onto samples.
type Shape int

const (
	// ShapeCurve is one curve; every point is a sample.
	ShapeCurve Shape = iota + 1
	// ShapeCurves is a batch of equal-length curves; every curve is a sample.
	ShapeCurves
)

func (s Shape) String() string {
	switch s {
	case ShapeCurve:
		return "curve"
	case ShapeCurves:
		return "curves"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// Targets holds the target curves of a Dataset. The zero value holds
// nothing and is rejected by every operation.
type Targets struct {
	shape Shape
	rows  [][]float64
}

// NewCurve wraps a single curve. The curve is copied.
func NewCurve(curve []float64) (Targets, error) {
	if len(curve) == 0 {
		return Targets{}, &ValidationError{Op: "targets", Err: ErrEmptyTargets}
	}
	return Targets{shape: ShapeCurve, rows: [][]float64{core.Clone(curve)}}, nil
}

// NewCurves wraps a batch of curves of equal length. The curves are copied.
// An empty batch is valid; an empty or ragged curve is not.
func NewCurves(curves [][]float64) (Targets, error) {
	if _, err := core.RowLength(curves); err != nil {
		return Targets{}, &ValidationError{Op: "targets", Err: err}
	}
	rows := core.CloneRows(curves)
	if rows == nil {
		rows = [][]float64{}
	}
	return Targets{shape: ShapeCurves, rows: rows}, nil
}

// Shape returns the target shape.
func (t Targets) Shape() Shape { return t.shape }

// IsZero reports whether t is the zero Targets.
func (t Targets) IsZero() bool { return t.shape == 0 }

// Len returns the number of samples t provides: the number of points of a
// single curve, or the number of curves in a batch.
func (t Targets) Len() int {
	if t.shape == ShapeCurve {
		return len(t.rows[0])
	}
	return len(t.rows)
}

// NumCurves returns the number of curves.
func (t Targets) NumCurves() int { return len(t.rows) }

// CurveLen returns the length of each curve, or 0 for an empty batch.
func (t Targets) CurveLen() int {
	if len(t.rows) == 0 {
		return 0
	}
	return len(t.rows[0])
}

// Curve returns a copy of curve i.
func (t Targets) Curve(i int) []float64 {
	return core.Clone(t.rows[i])
}

// Curves returns a copy of all curves.
func (t Targets) Curves() [][]float64 {
	return core.CloneRows(t.rows)
}

func (t Targets) clone() Targets {
	return Targets{shape: t.shape, rows: core.CloneRows(t.rows)}
}

func (t Targets) withRows(rows [][]float64) Targets {
	return Targets{shape: t.shape, rows: rows}
}
