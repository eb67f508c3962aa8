package dataset

import (
	"slices"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-curves/dsp/smooth"
	"github.com/cwbudde/algo-curves/measure/peak"
)

// Prep configures PrepData.
type Prep struct {
	Method smooth.Method
	Smooth []smooth.Option
	Peak   []peak.Option
}

// PrepData smooths the Dataset's own curves, extracts their peaks and
// stores both. Peak values of peak-only rows are kept. On failure the
// Dataset is unchanged.
func (d *Dataset) PrepData(p Prep) error {
	const op = "prep"

	f, err := d.newFilter(p.Method, p.Smooth)
	if err != nil {
		return err
	}
	if _, err := peak.ApplyOptions(p.Peak...); err != nil {
		return &ValidationError{Op: op, Err: err}
	}

	smoothed, err := d.applyFilter(f, d.y)
	if err != nil {
		return err
	}
	peaks, err := d.extractPeaks(smoothed, p.Peak)
	if err != nil {
		return err
	}
	ymax, err := d.mergePeaks(op, peaks)
	if err != nil {
		return err
	}

	d.y = smoothed
	d.ymax = ymax
	d.filter = f
	d.peakOpts = slices.Clone(p.Peak)
	d.state |= Smoothed | PeaksExtracted

	d.log.Info("dataset prepared",
		zap.Int("samples", len(d.x)),
		zap.Int("curves", d.y.NumCurves()),
		zap.Stringer("state", d.state))
	return nil
}

// mergePeaks places freshly extracted curve peaks into a new ymax, keeping
// the stored values of peak-only rows.
func (d *Dataset) mergePeaks(op string, peaks []float64) ([]float64, error) {
	if d.y.Shape() == ShapeCurve {
		return peaks, nil
	}
	if len(peaks)+len(d.peakOnly) != len(d.x) {
		return nil, invalid(op, ErrLengthMismatch, "%d feature rows, %d curves, %d peak-only rows",
			len(d.x), len(peaks), len(d.peakOnly))
	}

	out := make([]float64, len(d.x))
	next, only := 0, 0
	for r := range out {
		if only < len(d.peakOnly) && d.peakOnly[only] == r {
			out[r] = d.ymax[r]
			only++
			continue
		}
		out[r] = peaks[next]
		next++
	}
	return out, nil
}
