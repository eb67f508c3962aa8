package peak

import (
	"errors"
	"fmt"
)

// Default detection thresholds.
const (
	DefaultDistance   = 500
	DefaultProminence = 0.025
	// DefaultHeightRatio scales a curve's maximum into the height threshold
	// when no explicit height is given.
	DefaultHeightRatio = 0.5
)

// Errors returned by peak detection.
var (
	ErrEmptyCurve = errors.New("peak: curve is empty")
	ErrNoPeak     = errors.New("peak: no peak satisfies the constraints")
	ErrDistance   = errors.New("peak: distance must be >= 1")
	ErrProminence = errors.New("peak: prominence must be >= 0")
)

// Config holds resolved detection thresholds.
type Config struct {
	Distance   int
	Prominence float64
	// Height is the explicit minimum height. It is only used when HeightSet
	// is true; otherwise each curve gets DefaultHeightRatio times its max.
	Height    float64
	HeightSet bool
}

// Option mutates detection configuration.
type Option func(*Config)

// DefaultConfig returns the default detection thresholds.
func DefaultConfig() Config {
	return Config{
		Distance:   DefaultDistance,
		Prominence: DefaultProminence,
	}
}

// ApplyOptions applies options on top of DefaultConfig and validates the
// result.
func ApplyOptions(opts ...Option) (Config, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.Distance < 1 {
		return cfg, fmt.Errorf("%w: %d", ErrDistance, cfg.Distance)
	}
	if cfg.Prominence < 0 {
		return cfg, fmt.Errorf("%w: %g", ErrProminence, cfg.Prominence)
	}
	return cfg, nil
}

// WithDistance sets the minimum horizontal distance in samples between
// neighbouring peaks.
func WithDistance(samples int) Option {
	return func(cfg *Config) {
		cfg.Distance = samples
	}
}

// WithProminence sets the minimum prominence in curve units.
func WithProminence(p float64) Option {
	return func(cfg *Config) {
		cfg.Prominence = p
	}
}

// WithHeight sets a fixed minimum peak height for every curve.
func WithHeight(h float64) Option {
	return func(cfg *Config) {
		cfg.Height = h
		cfg.HeightSet = true
	}
}

// heightFor returns the height threshold for one curve.
func (c Config) heightFor(curve []float64) float64 {
	if c.HeightSet {
		return c.Height
	}
	m := curve[0]
	for _, v := range curve[1:] {
		if v > m {
			m = v
		}
	}
	return DefaultHeightRatio * m
}
