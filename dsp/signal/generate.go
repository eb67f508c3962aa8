// Package signal generates deterministic synthetic measurement curves.
package signal

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// ErrSamples is returned when a curve length is not positive.
var ErrSamples = errors.New("signal: samples must be > 0")

// Generator creates deterministic curves from a seed.
type Generator struct {
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the deterministic random seed for noise and synthesis.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured curve generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{seed: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Seed returns the generator seed.
func (g *Generator) Seed() int64 {
	return g.seed
}

// SetSeed replaces the generator seed.
func (g *Generator) SetSeed(seed int64) {
	g.seed = seed
}

// Gaussian generates a bell curve of the given amplitude centered at center
// with standard deviation width, both in samples.
func (g *Generator) Gaussian(center, width, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrSamples, samples)
	}
	if width <= 0 {
		return nil, fmt.Errorf("signal: gaussian width must be > 0: %f", width)
	}
	out := make([]float64, samples)
	for i := range out {
		d := (float64(i) - center) / width
		out[i] = amplitude * math.Exp(-0.5*d*d)
	}
	return out, nil
}

// LoadingCurve generates a skewed rise-and-decay curve
// a*(t/p)^2*exp(2*(1-t/p)) whose maximum a lies exactly at sample p.
func (g *Generator) LoadingCurve(peakPos, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrSamples, samples)
	}
	if peakPos <= 0 {
		return nil, fmt.Errorf("signal: loading curve peak position must be > 0: %f", peakPos)
	}
	out := make([]float64, samples)
	for i := range out {
		r := float64(i) / peakPos
		out[i] = amplitude * r * r * math.Exp(2*(1-r))
	}
	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrSamples, samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("signal: noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// Batch is a synthetic dataset: one feature row per curve.
type Batch struct {
	// Features holds {peak position, amplitude} of each generated curve.
	Features [][]float64
	Curves   [][]float64
}

// Synthesize generates n loading curves of the given length with randomized
// peak position (30% to 70% of the curve) and amplitude (0.5 to 1.5), plus
// white noise of the given amplitude. The same seed yields the same batch.
func (g *Generator) Synthesize(n, samples int, noise float64) (Batch, error) {
	if n <= 0 {
		return Batch{}, fmt.Errorf("signal: curve count must be > 0: %d", n)
	}
	if samples <= 0 {
		return Batch{}, fmt.Errorf("%w: %d", ErrSamples, samples)
	}
	if noise < 0 {
		return Batch{}, fmt.Errorf("signal: noise amplitude must be >= 0: %f", noise)
	}

	rng := rand.New(rand.NewSource(g.seed))
	b := Batch{
		Features: make([][]float64, n),
		Curves:   make([][]float64, n),
	}
	for i := 0; i < n; i++ {
		pos := float64(samples) * (0.3 + 0.4*rng.Float64())
		amp := 0.5 + rng.Float64()

		curve, err := g.LoadingCurve(pos, amp, samples)
		if err != nil {
			return Batch{}, err
		}
		for j := range curve {
			curve[j] += (rng.Float64()*2 - 1) * noise
		}

		b.Features[i] = []float64{pos, amp}
		b.Curves[i] = curve
	}
	return b, nil
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("signal: normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, errors.New("signal: normalize input must not be empty")
	}

	maxAbs := 0.0
	for _, v := range data {
		maxAbs = math.Max(maxAbs, math.Abs(v))
	}

	out := make([]float64, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / maxAbs
	for i, v := range data {
		out[i] = v * scale
	}
	return out, nil
}
