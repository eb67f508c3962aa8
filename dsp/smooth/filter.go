package smooth

import (
	"fmt"

	"github.com/cwbudde/algo-curves/dsp/core"
)

// Filter applies one smoothing method with validated parameters.
type Filter struct {
	method   Method
	cfg      Config
	warnings []Warning
	impl     strategy
}

// New validates the options for method and prepares the filter.
//
// An even window is raised by one and recorded as a Warning. A window below
// one, or a polynomial order outside [0, window) for SavitzkyGolay, is an
// error.
func New(method Method, opts ...Option) (*Filter, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.Window < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrWindow, cfg.Window)
	}

	var warnings []Warning
	if !core.IsOdd(cfg.Window) {
		w := Warning{Param: "window", Requested: cfg.Window, Used: core.NextOdd(cfg.Window)}
		warnings = append(warnings, w)
		cfg.Window = w.Used
	}

	if method == SavitzkyGolay && (cfg.PolyOrder < 0 || cfg.PolyOrder >= cfg.Window) {
		return nil, fmt.Errorf("%w: order %d, window %d", ErrPolyOrder, cfg.PolyOrder, cfg.Window)
	}

	impl, err := newStrategy(method, cfg)
	if err != nil {
		return nil, err
	}

	return &Filter{
		method:   method,
		cfg:      cfg,
		warnings: warnings,
		impl:     impl,
	}, nil
}

// Method returns the smoothing method.
func (f *Filter) Method() Method { return f.method }

// Window returns the effective (odd) window length.
func (f *Filter) Window() int { return f.cfg.Window }

// PolyOrder returns the polynomial order.
func (f *Filter) PolyOrder() int { return f.cfg.PolyOrder }

// Warnings returns the parameter corrections made by New.
func (f *Filter) Warnings() []Warning {
	return append([]Warning(nil), f.warnings...)
}

// Apply returns a smoothed copy of curve. The input is not modified.
func (f *Filter) Apply(curve []float64) ([]float64, error) {
	if len(curve) == 0 {
		return nil, ErrEmptyCurve
	}
	return f.impl.smooth(curve)
}

// Savgol is a one-shot Savitzky-Golay smoothing of curve.
func Savgol(curve []float64, window, polyOrder int) ([]float64, []Warning, error) {
	f, err := New(SavitzkyGolay, WithWindow(window), WithPolyOrder(polyOrder))
	if err != nil {
		return nil, nil, err
	}
	out, err := f.Apply(curve)
	if err != nil {
		return nil, nil, err
	}
	return out, f.Warnings(), nil
}
