package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/cwbudde/algo-curves/dataset"
)

// SaveDataset writes the features, peak values and peak-only rows of ds.
// It fails with ErrNoTargets when no peak values are present. Curves are
// not written: the store keeps the raw curves it was loaded from.
func SaveDataset(ctx context.Context, s ArrayStore, ds *dataset.Dataset) error {
	ymax, ok := ds.Ymax()
	if !ok {
		return ErrNoTargets
	}
	x, _ := ds.Data()

	if err := s.SaveMatrix(ctx, KeyFeatures, x); err != nil {
		return fmt.Errorf("store: save %s: %w", KeyFeatures, err)
	}
	if err := s.SaveVector(ctx, KeyTargets, ymax); err != nil {
		return fmt.Errorf("store: save %s: %w", KeyTargets, err)
	}
	if err := s.SaveVector(ctx, KeyPeakOnly, rowsToVector(ds.PeakOnlyRows())); err != nil {
		return fmt.Errorf("store: save %s: %w", KeyPeakOnly, err)
	}
	return nil
}

// SaveRaw writes features and raw curves, the input of a later
// LoadDataset.
func SaveRaw(ctx context.Context, s ArrayStore, features, curves [][]float64) error {
	if err := s.SaveMatrix(ctx, KeyFeatures, features); err != nil {
		return fmt.Errorf("store: save %s: %w", KeyFeatures, err)
	}
	if err := s.SaveMatrix(ctx, KeyCurves, curves); err != nil {
		return fmt.Errorf("store: save %s: %w", KeyCurves, err)
	}
	return nil
}

// LoadDataset builds a batch Dataset from the features and raw curves in s.
// Peak values and peak-only rows are attached when present.
func LoadDataset(ctx context.Context, s ArrayStore, opts ...dataset.Option) (*dataset.Dataset, error) {
	x, err := s.LoadMatrix(ctx, KeyFeatures)
	if err != nil {
		return nil, fmt.Errorf("store: load %s: %w", KeyFeatures, err)
	}
	curves, err := s.LoadMatrix(ctx, KeyCurves)
	if err != nil {
		return nil, fmt.Errorf("store: load %s: %w", KeyCurves, err)
	}
	ymax, err := loadOptionalVector(ctx, s, KeyTargets)
	if err != nil {
		return nil, err
	}
	peakOnlyVec, err := loadOptionalVector(ctx, s, KeyPeakOnly)
	if err != nil {
		return nil, err
	}
	peakOnly, err := vectorToRows(peakOnlyVec)
	if err != nil {
		return nil, err
	}

	y, err := dataset.NewCurves(curves)
	if err != nil {
		return nil, err
	}
	return dataset.Restore(x, y, ymax, peakOnly, opts...)
}

// ExtendKind selects which arrays ExtendDataset reads.
type ExtendKind int

const (
	// ExtendCurves reads features and raw curves.
	ExtendCurves ExtendKind = iota
	// ExtendMaxima reads features and pre-extracted peak values.
	ExtendMaxima
)

func (k ExtendKind) String() string {
	switch k {
	case ExtendCurves:
		return "curves"
	case ExtendMaxima:
		return "maxima"
	default:
		return fmt.Sprintf("ExtendKind(%d)", int(k))
	}
}

// ExtendDataset reads new samples from s and appends them to ds. It
// returns the features read, and the raw curves for ExtendCurves.
func ExtendDataset(ctx context.Context, s ArrayStore, ds *dataset.Dataset, kind ExtendKind) (features, curves [][]float64, err error) {
	features, err = s.LoadMatrix(ctx, KeyFeatures)
	if err != nil {
		return nil, nil, fmt.Errorf("store: load %s: %w", KeyFeatures, err)
	}

	switch kind {
	case ExtendCurves:
		curves, err = s.LoadMatrix(ctx, KeyCurves)
		if err != nil {
			return nil, nil, fmt.Errorf("store: load %s: %w", KeyCurves, err)
		}
		err = ds.ExtendData(features, dataset.RawCurves(curves))
	case ExtendMaxima:
		var v []float64
		v, err = s.LoadVector(ctx, KeyTargets)
		if err != nil {
			return nil, nil, fmt.Errorf("store: load %s: %w", KeyTargets, err)
		}
		err = ds.ExtendData(features, dataset.PeakValues(v))
	default:
		return nil, nil, fmt.Errorf("store: unknown extend kind %s", kind)
	}
	if err != nil {
		return nil, nil, err
	}
	return features, curves, nil
}

func loadOptionalVector(ctx context.Context, s ArrayStore, key string) ([]float64, error) {
	v, err := s.LoadVector(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: load %s: %w", key, err)
	}
	return v, nil
}

func rowsToVector(rows []int) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = float64(r)
	}
	return out
}

func vectorToRows(v []float64) ([]int, error) {
	if len(v) == 0 {
		return nil, nil
	}
	out := make([]int, len(v))
	for i, f := range v {
		r := int(f)
		if float64(r) != f || r < 0 {
			return nil, fmt.Errorf("store: %s: invalid row index %v", KeyPeakOnly, f)
		}
		out[i] = r
	}
	return out, nil
}
