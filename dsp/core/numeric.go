package core

import "math"

const defaultEpsilon = 1e-12

// NearlyEqual reports whether a and b are equal within eps, using an
// absolute test first and a relative test for large magnitudes.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// IsOdd reports whether n is odd.
func IsOdd(n int) bool {
	return n%2 != 0
}

// NextOdd returns n when it is odd and n+1 otherwise.
func NextOdd(n int) int {
	if IsOdd(n) {
		return n
	}
	return n + 1
}

// AllFinite reports whether every value is neither NaN nor Inf.
func AllFinite(x []float64) bool {
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
