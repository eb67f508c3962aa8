package dataset

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-curves/measure/peak"
)

// FindMaximum returns the value of the first qualifying peak of every curve
// in y, in curve order. Without peak.WithHeight the height threshold is half
// of each curve's own maximum.
//
// Every curve without a qualifying peak is reported as a NoPeakFoundError;
// the errors are joined. On success the Dataset is marked PeaksExtracted and
// remembers the options for curves added later. The values are returned,
// not stored: PrepData stores them, or pass them to ExtendYmax.
func (d *Dataset) FindMaximum(y Targets, opts ...peak.Option) ([]float64, error) {
	if _, err := peak.ApplyOptions(opts...); err != nil {
		return nil, &ValidationError{Op: "find maximum", Err: err}
	}

	out, err := d.extractPeaks(y, opts)
	if err != nil {
		return nil, err
	}

	d.peakOpts = slices.Clone(opts)
	d.state |= PeaksExtracted
	return out, nil
}

func (d *Dataset) extractPeaks(y Targets, opts []peak.Option) ([]float64, error) {
	if y.IsZero() {
		return nil, &ValidationError{Op: "find maximum", Err: ErrEmptyTargets}
	}

	out := make([]float64, y.NumCurves())
	err := d.forEachCurve(len(out), func(i int) error {
		p, err := peak.First(y.rows[i], opts...)
		if errors.Is(err, peak.ErrNoPeak) {
			return &NoPeakFoundError{Curve: i, Err: err}
		}
		if err != nil {
			return fmt.Errorf("curve %d: %w", i, err)
		}
		out[i] = p.Value
		return nil
	})
	if err != nil {
		d.log.Debug("peak extraction failed",
			zap.Ints("curves", FailedCurves(err)),
			zap.Error(err))
		return nil, err
	}

	d.log.Debug("extracted peaks", zap.Int("curves", len(out)))
	return out, nil
}
