package curve

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Stats holds per-curve statistics.
type Stats struct {
	Length   int
	Mean     float64
	RMS      float64
	Max      float64
	MaxPos   int
	Min      float64
	MinPos   int
	Peak     float64 // max(|max|, |min|)
	Range    float64 // max - min
	Energy   float64 // sum of squares
	Area     float64 // trapezoidal integral with unit spacing
	Variance float64
	StdDev   float64
	Skewness float64
	Kurtosis float64 // excess
}

// Calculate computes all statistics in a single pass using Welford's online
// algorithm for the higher-order moments.
func Calculate(curve []float64) Stats {
	n := len(curve)
	if n == 0 {
		return Stats{}
	}

	var (
		mean float64
		m2   float64
		m3   float64
		m4   float64
	)

	var (
		sumSq  float64
		area   float64
		maxVal = curve[0]
		maxPos int
		minVal = curve[0]
		minPos int
	)

	for i, x := range curve {
		ni := float64(i + 1)
		delta := x - mean
		deltaN := delta / ni
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * float64(i)

		// M4 must be updated before M3, and M3 before M2.
		m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*m2 - 4*deltaN*m3
		m3 += term1*deltaN*(float64(i)-1) - 3*deltaN*m2
		m2 += term1
		mean += deltaN

		sumSq += x * x

		if i > 0 {
			area += 0.5 * (curve[i-1] + x)
		}

		if x > maxVal {
			maxVal = x
			maxPos = i
		}
		if x < minVal {
			minVal = x
			minPos = i
		}
	}

	nf := float64(n)
	variance := m2 / nf

	var skewness, kurtosis float64
	if variance > 0 {
		skewness = (m3 / nf) / (variance * math.Sqrt(variance))
		kurtosis = (m4/nf)/(variance*variance) - 3
	}

	return Stats{
		Length:   n,
		Mean:     mean,
		RMS:      math.Sqrt(sumSq / nf),
		Max:      maxVal,
		MaxPos:   maxPos,
		Min:      minVal,
		MinPos:   minPos,
		Peak:     math.Max(math.Abs(maxVal), math.Abs(minVal)),
		Range:    maxVal - minVal,
		Energy:   sumSq,
		Area:     area,
		Variance: variance,
		StdDev:   math.Sqrt(variance),
		Skewness: skewness,
		Kurtosis: kurtosis,
	}
}

// CalculateAll returns the statistics of every row.
func CalculateAll(curves [][]float64) []Stats {
	out := make([]Stats, len(curves))
	for i, c := range curves {
		out[i] = Calculate(c)
	}
	return out
}

// Mean returns the arithmetic mean of the curve.
func Mean(curve []float64) float64 {
	if len(curve) == 0 {
		return 0
	}
	return vecmath.Sum(curve) / float64(len(curve))
}

// Peak returns the largest absolute value of the curve.
func Peak(curve []float64) float64 {
	if len(curve) == 0 {
		return 0
	}
	return vecmath.MaxAbs(curve)
}

// RMS returns the root-mean-square of the curve.
func RMS(curve []float64) float64 {
	if len(curve) == 0 {
		return 0
	}
	return math.Sqrt(vecmath.DotProduct(curve, curve) / float64(len(curve)))
}

// ArgMax returns the index of the first maximum. It returns -1 for an
// empty curve.
func ArgMax(curve []float64) int {
	if len(curve) == 0 {
		return -1
	}
	pos := 0
	for i, v := range curve {
		if v > curve[pos] {
			pos = i
		}
	}
	return pos
}
