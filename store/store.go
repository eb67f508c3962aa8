// Package store persists dataset arrays.
//
// An [ArrayStore] saves and loads named float64 matrices and vectors.
// [SaveDataset], [LoadDataset] and [ExtendDataset] map a
// [dataset.Dataset] onto the well-known keys below. Backends live in the
// sqlite and xlsx subpackages; [NewMemory] keeps everything in process.
package store

import (
	"context"
	"errors"
)

// Well-known array keys.
const (
	KeyFeatures = "features"
	KeyTargets  = "targets" // peak values
	KeyCurves   = "curves"  // raw curves
	KeyPeakOnly = "peak_only_rows"
)

// Errors returned by stores and the dataset helpers.
var (
	ErrNotFound  = errors.New("store: key not found")
	ErrNoTargets = errors.New("store: dataset has no peak values")
	ErrClosed    = errors.New("store: closed")
)

// ArrayStore saves and loads float64 arrays by key. Loading returns values
// equal to the saved ones; a missing key yields ErrNotFound.
type ArrayStore interface {
	SaveMatrix(ctx context.Context, key string, m [][]float64) error
	LoadMatrix(ctx context.Context, key string) ([][]float64, error)
	SaveVector(ctx context.Context, key string, v []float64) error
	LoadVector(ctx context.Context, key string) ([]float64, error)
	Close() error
}
