package dataset

import (
	"go.uber.org/zap"

	"github.com/cwbudde/algo-curves/dsp/core"
)

type extensionKind int

const (
	extendNone extensionKind = iota
	extendCurves
	extendPeaks
)

// Extension carries new targets for ExtendData. Build it with RawCurves or
// PeakValues; the zero value is rejected.
type Extension struct {
	kind   extensionKind
	curves [][]float64
	peaks  []float64
}

// RawCurves extends the dataset with unprocessed curves, one per feature
// row. They are smoothed and peak-extracted when the dataset already is.
func RawCurves(curves [][]float64) Extension {
	return Extension{kind: extendCurves, curves: curves}
}

// PeakValues extends the dataset with pre-extracted peak values, one per
// feature row, and no curves.
func PeakValues(v []float64) Extension {
	return Extension{kind: extendPeaks, peaks: v}
}

// ExtendData appends feature rows and their targets, preserving order.
// Only batch datasets can be extended. On failure the Dataset is
// unchanged.
func (d *Dataset) ExtendData(features [][]float64, ext Extension) error {
	const op = "extend"

	if d.y.Shape() != ShapeCurves {
		return &ValidationError{Op: op, Err: ErrNotExtendable}
	}
	if err := checkFeatures(features, d.featureWidth()); err != nil {
		return &ValidationError{Op: op, Err: err}
	}

	switch ext.kind {
	case extendCurves:
		return d.extendCurves(op, features, ext.curves)
	case extendPeaks:
		return d.extendPeaks(op, features, ext.peaks)
	default:
		return &ValidationError{Op: op, Err: ErrExtensionKind}
	}
}

func (d *Dataset) extendCurves(op string, features, curves [][]float64) error {
	if len(features) != len(curves) {
		return invalid(op, ErrLengthMismatch, "%d feature rows, %d curves", len(features), len(curves))
	}
	n, err := core.RowLength(curves)
	if err != nil {
		return &ValidationError{Op: op, Err: err}
	}
	if want := d.y.CurveLen(); want > 0 && len(curves) > 0 && n != want {
		return invalid(op, ErrCurveLength, "got %d points, want %d", n, want)
	}
	if d.MaximumFound() && len(d.ymax) != len(d.x) {
		return invalid(op, ErrYmaxLength, "%d peak values, %d samples", len(d.ymax), len(d.x))
	}

	added := Targets{shape: ShapeCurves, rows: core.CloneRows(curves)}
	if d.Smoothed() {
		if added, err = d.applyFilter(d.filter, added); err != nil {
			return err
		}
	}

	var peaks []float64
	if d.MaximumFound() {
		if peaks, err = d.extractPeaks(added, d.peakOpts); err != nil {
			return err
		}
	}

	d.x = core.AppendRows(d.x, features)
	d.y = d.y.withRows(append(d.y.rows, added.rows...))
	if d.MaximumFound() {
		d.ymax = core.Concat(d.ymax, peaks)
	}

	d.log.Debug("extended with curves",
		zap.Int("added", len(curves)),
		zap.Int("samples", len(d.x)),
		zap.Stringer("state", d.state))
	return nil
}

func (d *Dataset) extendPeaks(op string, features [][]float64, peaks []float64) error {
	if len(features) != len(peaks) {
		return invalid(op, ErrLengthMismatch, "%d feature rows, %d peak values", len(features), len(peaks))
	}
	if d.ymax == nil {
		return &ValidationError{Op: op, Err: ErrNoYmax}
	}
	if len(d.ymax) != len(d.x) {
		return invalid(op, ErrYmaxLength, "%d peak values, %d samples", len(d.ymax), len(d.x))
	}

	base := len(d.x)
	d.x = core.AppendRows(d.x, features)
	d.ymax = core.Concat(d.ymax, peaks)
	for i := range peaks {
		d.peakOnly = append(d.peakOnly, base+i)
	}

	d.log.Debug("extended with peak values",
		zap.Int("added", len(peaks)),
		zap.Int("samples", len(d.x)))
	return nil
}

// ExtendYmax appends peak values without touching features or curves. It
// fails with a ValidationError when ymax would outgrow the samples. State
// is not changed.
func (d *Dataset) ExtendYmax(v []float64) error {
	if len(d.ymax)+len(v) > len(d.x) {
		return invalid("extend ymax", ErrYmaxOverflow, "%d + %d peak values, %d samples",
			len(d.ymax), len(v), len(d.x))
	}
	if len(v) == 0 {
		return nil
	}
	d.ymax = core.Concat(d.ymax, v)
	return nil
}
