package testutil

import (
	"math"
	"math/rand"
)

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DC generates a constant-valued curve.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Ones returns a slice of length n filled with 1.0.
func Ones(n int) []float64 {
	return DC(1.0, n)
}

// Gaussian samples amplitude*exp(-(i-center)^2 / (2*sigma^2)) at i = 0..length-1.
func Gaussian(length int, center, sigma, amplitude float64) []float64 {
	out := make([]float64, length)
	for i := range out {
		d := (float64(i) - center) / sigma
		out[i] = amplitude * math.Exp(-0.5*d*d)
	}
	return out
}

// Polynomial evaluates sum(coeffs[k] * t^k) at t = i/length for each index.
func Polynomial(length int, coeffs ...float64) []float64 {
	out := make([]float64, length)
	for i := range out {
		t := float64(i) / float64(length)
		v := 0.0
		for k := len(coeffs) - 1; k >= 0; k-- {
			v = v*t + coeffs[k]
		}
		out[i] = v
	}
	return out
}

// Add returns the element-wise sum of a and b, truncated to the shorter one.
func Add(a, b []float64) []float64 {
	n := min(len(a), len(b))
	out := make([]float64, n)
	for i := range out {
		out[i] = a[i] + b[i]
	}
	return out
}

// GaussianCurves returns one Gaussian bump per center, all of the given length.
func GaussianCurves(length int, sigma, amplitude float64, centers ...float64) [][]float64 {
	out := make([][]float64, len(centers))
	for i, c := range centers {
		out[i] = Gaussian(length, c, sigma, amplitude)
	}
	return out
}

// Features returns n feature rows of width w filled with row-dependent values.
func Features(n, w int) [][]float64 {
	out := make([][]float64, n)
	for i := range out {
		row := make([]float64, w)
		for j := range row {
			row[j] = float64(i*w + j)
		}
		out[i] = row
	}
	return out
}
