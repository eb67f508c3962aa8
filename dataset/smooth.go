package dataset

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-curves/dsp/smooth"
)

// SmoothY returns a smoothed copy of y using method. Every curve is filtered
// independently with the same parameters. An even window is raised by one
// and logged as a warning.
//
// Invalid parameters, and curves shorter than the window, fail with a
// ValidationError. On success the Dataset is marked Smoothed and remembers
// the filter for curves added later; y itself is not stored.
func (d *Dataset) SmoothY(y Targets, method smooth.Method, opts ...smooth.Option) (Targets, error) {
	f, err := d.newFilter(method, opts)
	if err != nil {
		return Targets{}, err
	}

	out, err := d.applyFilter(f, y)
	if err != nil {
		return Targets{}, err
	}

	d.filter = f
	d.state |= Smoothed
	return out, nil
}

func (d *Dataset) newFilter(method smooth.Method, opts []smooth.Option) (*smooth.Filter, error) {
	f, err := smooth.New(method, opts...)
	if err != nil {
		return nil, &ValidationError{Op: "smooth", Err: err}
	}
	for _, w := range f.Warnings() {
		d.log.Warn("smoothing parameter corrected",
			zap.String("param", w.Param),
			zap.Int("requested", w.Requested),
			zap.Int("used", w.Used))
	}
	return f, nil
}

// applyFilter filters every curve of y with f and returns new Targets of
// the same shape.
func (d *Dataset) applyFilter(f *smooth.Filter, y Targets) (Targets, error) {
	if y.IsZero() {
		return Targets{}, &ValidationError{Op: "smooth", Err: ErrEmptyTargets}
	}

	rows := make([][]float64, y.NumCurves())
	err := d.forEachCurve(len(rows), func(i int) error {
		out, err := f.Apply(y.rows[i])
		if err != nil {
			return fmt.Errorf("curve %d: %w", i, err)
		}
		rows[i] = out
		return nil
	})
	if err != nil {
		return Targets{}, &ValidationError{Op: "smooth", Err: err}
	}

	d.log.Debug("smoothed curves",
		zap.Stringer("method", f.Method()),
		zap.Int("window", f.Window()),
		zap.Int("poly_order", f.PolyOrder()),
		zap.Int("curves", len(rows)))

	return y.withRows(rows), nil
}
