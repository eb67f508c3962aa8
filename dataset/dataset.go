package dataset

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-curves/dsp/core"
	"github.com/cwbudde/algo-curves/dsp/smooth"
	"github.com/cwbudde/algo-curves/measure/peak"
)

// Dataset pairs feature rows with target curves and their peak values.
type Dataset struct {
	x        [][]float64
	y        Targets
	ymax     []float64
	peakOnly []int // sorted x rows that carry a peak value but no curve
	state    State

	// Configuration of the last successful smoothing and peak extraction,
	// reused for curves added by ExtendData.
	filter   *smooth.Filter
	peakOpts []peak.Option

	log     *zap.Logger
	workers int
}

// New creates a Dataset in state Raw. It fails with a ValidationError when
// len(x) != y.Len(), when y is the zero Targets, or when feature rows differ
// in width. x and y are copied.
func New(x [][]float64, y Targets, opts ...Option) (*Dataset, error) {
	const op = "new"

	if y.IsZero() {
		return nil, &ValidationError{Op: op, Err: ErrEmptyTargets}
	}
	if err := checkFeatures(x, 0); err != nil {
		return nil, &ValidationError{Op: op, Err: err}
	}
	if len(x) != y.Len() {
		return nil, invalid(op, ErrLengthMismatch, "%d feature rows, %d target samples", len(x), y.Len())
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return &Dataset{
		x:       core.CloneRows(x),
		y:       y.clone(),
		log:     cfg.logger,
		workers: cfg.workers,
	}, nil
}

// Restore rebuilds a Dataset from persisted parts. ymax may cover a prefix
// of the samples and peakOnly lists the rows that have a peak value but no
// curve. The result is in state Raw.
func Restore(x [][]float64, y Targets, ymax []float64, peakOnly []int, opts ...Option) (*Dataset, error) {
	const op = "restore"

	if len(peakOnly) > 0 && y.Shape() != ShapeCurves {
		return nil, invalid(op, ErrPeakOnlyRows, "only batches can hold peak-only rows")
	}
	for i, r := range peakOnly {
		if r < 0 || r >= len(ymax) || (i > 0 && r <= peakOnly[i-1]) {
			return nil, invalid(op, ErrPeakOnlyRows, "row %d at position %d", r, i)
		}
	}
	if n := len(x) - len(peakOnly); n < 0 || n != y.Len() {
		return nil, invalid(op, ErrLengthMismatch, "%d feature rows, %d curves, %d peak-only rows",
			len(x), y.Len(), len(peakOnly))
	}
	if len(ymax) > len(x) {
		return nil, invalid(op, ErrYmaxOverflow, "%d peak values, %d samples", len(ymax), len(x))
	}
	if err := checkFeatures(x, 0); err != nil {
		return nil, &ValidationError{Op: op, Err: err}
	}

	withCurves := make([][]float64, 0, y.Len())
	for r, row := range x {
		if !slices.Contains(peakOnly, r) {
			withCurves = append(withCurves, row)
		}
	}
	d, err := New(withCurves, y, opts...)
	if err != nil {
		return nil, err
	}

	d.x = core.CloneRows(x)
	d.peakOnly = slices.Clone(peakOnly)
	if ymax != nil {
		d.ymax = core.Clone(ymax)
	}
	return d, nil
}

// Data returns copies of the features and targets.
func (d *Dataset) Data() ([][]float64, Targets) {
	return core.CloneRows(d.x), d.y.clone()
}

// Ymax returns a copy of the peak values. ok is false until peak extraction
// or ExtendYmax has supplied them.
func (d *Dataset) Ymax() (ymax []float64, ok bool) {
	if d.ymax == nil {
		return nil, false
	}
	return core.Clone(d.ymax), true
}

// Len returns the number of samples (feature rows).
func (d *Dataset) Len() int { return len(d.x) }

// State returns the processing state.
func (d *Dataset) State() State { return d.state }

// Smoothed reports whether the targets have been smoothed.
func (d *Dataset) Smoothed() bool { return d.state.Has(Smoothed) }

// MaximumFound reports whether peak extraction has run.
func (d *Dataset) MaximumFound() bool { return d.state.Has(PeaksExtracted) }

// PeakOnlyRows returns the feature rows added with pre-extracted peak values
// and no curve.
func (d *Dataset) PeakOnlyRows() []int {
	return slices.Clone(d.peakOnly)
}

// ReplaceY replaces the targets unconditionally. Peak values and state are
// left alone; callers that need them consistent must rerun extraction.
func (d *Dataset) ReplaceY(y Targets) {
	d.y = y.clone()
	d.log.Debug("targets replaced",
		zap.Stringer("shape", y.Shape()),
		zap.Int("curves", y.NumCurves()))
}

// checkFeatures verifies that all rows have the same non-zero width, and
// that width when want > 0.
func checkFeatures(x [][]float64, want int) error {
	w, err := core.RowLength(x)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRaggedFeatures, err)
	}
	if want > 0 && len(x) > 0 && w != want {
		return fmt.Errorf("%w: width %d, want %d", ErrRaggedFeatures, w, want)
	}
	return nil
}

func (d *Dataset) featureWidth() int {
	if len(d.x) == 0 {
		return 0
	}
	return len(d.x[0])
}

// forEachCurve runs fn for indices [0, n) on the worker pool and joins the
// errors in index order.
func (d *Dataset) forEachCurve(n int, fn func(i int) error) error {
	errs := make([]error, n)

	var g errgroup.Group
	g.SetLimit(d.workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			errs[i] = fn(i)
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}
