package smooth

import (
	"errors"
	"fmt"
)

// DefaultPolyOrder is the Savitzky-Golay polynomial degree used when
// WithPolyOrder is not given.
const DefaultPolyOrder = 3

// Errors returned by filter construction and application.
var (
	ErrUnknownMethod = errors.New("smooth: unknown method")
	ErrWindow        = errors.New("smooth: window length must be >= 1")
	ErrPolyOrder     = errors.New("smooth: polynomial order must be >= 0 and less than the window length")
	ErrCurveTooShort = errors.New("smooth: curve is shorter than the window")
	ErrEmptyCurve    = errors.New("smooth: empty curve")
)

// Config holds smoothing parameters.
type Config struct {
	Window    int
	PolyOrder int
}

// Option configures a Filter.
type Option func(*Config)

func defaultConfig() Config {
	return Config{PolyOrder: DefaultPolyOrder}
}

// WithWindow sets the number of consecutive samples per local fit.
func WithWindow(n int) Option {
	return func(c *Config) {
		c.Window = n
	}
}

// WithPolyOrder sets the degree of the local fitting polynomial.
// Ignored by MovingAverage.
func WithPolyOrder(k int) Option {
	return func(c *Config) {
		c.PolyOrder = k
	}
}

// Warning reports a parameter that was corrected instead of rejected.
type Warning struct {
	Param     string
	Requested int
	Used      int
}

func (w Warning) String() string {
	return fmt.Sprintf("smooth: %s must be odd, increased from %d to %d", w.Param, w.Requested, w.Used)
}
