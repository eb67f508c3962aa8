package curve

import (
	"errors"
	"fmt"

	"github.com/montanaflynn/stats"
)

// ErrNoValues is returned when summarizing an empty set of values.
var ErrNoValues = errors.New("curve: no values to summarize")

// Summary describes a distribution of scalar values.
type Summary struct {
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	Median float64
	StdDev float64 // population
	P05    float64 // nearest rank
	P95    float64
}

// Summarize returns the distribution summary of values.
func Summarize(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, ErrNoValues
	}

	data := stats.Float64Data(values)
	s := Summary{Count: len(values)}

	var err error
	if s.Min, err = stats.Min(data); err != nil {
		return Summary{}, fmt.Errorf("curve: min: %w", err)
	}
	if s.Max, err = stats.Max(data); err != nil {
		return Summary{}, fmt.Errorf("curve: max: %w", err)
	}
	if s.Mean, err = stats.Mean(data); err != nil {
		return Summary{}, fmt.Errorf("curve: mean: %w", err)
	}
	if s.Median, err = stats.Median(data); err != nil {
		return Summary{}, fmt.Errorf("curve: median: %w", err)
	}
	if s.StdDev, err = stats.StandardDeviation(data); err != nil {
		return Summary{}, fmt.Errorf("curve: stddev: %w", err)
	}
	if s.P05, err = stats.PercentileNearestRank(data, 5); err != nil {
		return Summary{}, fmt.Errorf("curve: p05: %w", err)
	}
	if s.P95, err = stats.PercentileNearestRank(data, 95); err != nil {
		return Summary{}, fmt.Errorf("curve: p95: %w", err)
	}

	return s, nil
}
