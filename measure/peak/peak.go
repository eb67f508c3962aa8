package peak

import (
	"fmt"
	"sort"
)

// Peak describes one detected peak.
type Peak struct {
	Index      int
	Value      float64
	Prominence float64
	LeftBase   int // lowest point between the peak and a higher sample on the left
	RightBase  int
}

// Find returns all peaks that pass the configured thresholds, in index
// order. It returns ErrNoPeak when none survive.
func Find(curve []float64, opts ...Option) ([]Peak, error) {
	cfg, err := ApplyOptions(opts...)
	if err != nil {
		return nil, err
	}
	return find(curve, cfg)
}

// First returns the first peak in index order that passes the configured
// thresholds.
func First(curve []float64, opts ...Option) (Peak, error) {
	peaks, err := Find(curve, opts...)
	if err != nil {
		return Peak{}, err
	}
	return peaks[0], nil
}

func find(curve []float64, cfg Config) ([]Peak, error) {
	if len(curve) == 0 {
		return nil, ErrEmptyCurve
	}

	candidates := LocalMaxima(curve)

	height := cfg.heightFor(curve)
	kept := candidates[:0]
	for _, i := range candidates {
		if curve[i] >= height {
			kept = append(kept, i)
		}
	}
	candidates = selectByDistance(curve, kept, cfg.Distance)

	var peaks []Peak
	for _, i := range candidates {
		prom, left, right := Prominence(curve, i)
		if prom < cfg.Prominence {
			continue
		}
		peaks = append(peaks, Peak{
			Index:      i,
			Value:      curve[i],
			Prominence: prom,
			LeftBase:   left,
			RightBase:  right,
		})
	}

	if len(peaks) == 0 {
		return nil, fmt.Errorf("%w (height %g, distance %d, prominence %g)",
			ErrNoPeak, height, cfg.Distance, cfg.Prominence)
	}
	return peaks, nil
}

// LocalMaxima returns the indices of all local maxima in index order.
// For a flat plateau the middle index (rounded down) is reported.
func LocalMaxima(curve []float64) []int {
	n := len(curve)
	var out []int
	for i := 1; i < n-1; i++ {
		if curve[i-1] >= curve[i] {
			continue
		}
		ahead := i + 1
		for ahead < n-1 && curve[ahead] == curve[i] {
			ahead++
		}
		if curve[ahead] < curve[i] {
			out = append(out, (i+ahead-1)/2)
			i = ahead - 1
		}
	}
	return out
}

// selectByDistance drops peaks closer than distance to a taller kept peak.
func selectByDistance(curve []float64, peaks []int, distance int) []int {
	if distance <= 1 || len(peaks) < 2 {
		return peaks
	}

	order := make([]int, len(peaks))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return curve[peaks[order[a]]] < curve[peaks[order[b]]]
	})

	keep := make([]bool, len(peaks))
	for i := range keep {
		keep[i] = true
	}

	for i := len(order) - 1; i >= 0; i-- {
		j := order[i]
		if !keep[j] {
			continue
		}
		for k := j - 1; k >= 0 && peaks[j]-peaks[k] < distance; k-- {
			keep[k] = false
		}
		for k := j + 1; k < len(peaks) && peaks[k]-peaks[j] < distance; k++ {
			keep[k] = false
		}
	}

	out := peaks[:0]
	for i, p := range peaks {
		if keep[i] {
			out = append(out, p)
		}
	}
	return out
}

// Prominence returns the prominence of the sample at index i together with
// its left and right bases. The search on each side stops at the first
// sample strictly higher than curve[i] or at the curve boundary.
func Prominence(curve []float64, i int) (prominence float64, leftBase, rightBase int) {
	v := curve[i]

	leftMin := v
	leftBase = i
	for k := i; k >= 0 && curve[k] <= v; k-- {
		if curve[k] < leftMin {
			leftMin = curve[k]
			leftBase = k
		}
	}

	rightMin := v
	rightBase = i
	for k := i; k < len(curve) && curve[k] <= v; k++ {
		if curve[k] < rightMin {
			rightMin = curve[k]
			rightBase = k
		}
	}

	return v - max(leftMin, rightMin), leftBase, rightBase
}
