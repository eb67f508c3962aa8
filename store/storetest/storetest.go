// Package storetest checks ArrayStore implementations against the
// round-trip contract.
package storetest

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-curves/store"
)

// Opener returns a fresh, empty store. Calling it twice with the same
// name must reopen the same underlying storage.
type Opener func(t *testing.T, name string) store.ArrayStore

// Run exercises open against the ArrayStore contract.
func Run(t *testing.T, open Opener) {
	t.Helper()

	t.Run("MatrixRoundTrip", func(t *testing.T) { testMatrixRoundTrip(t, open) })
	t.Run("VectorRoundTrip", func(t *testing.T) { testVectorRoundTrip(t, open) })
	t.Run("Overwrite", func(t *testing.T) { testOverwrite(t, open) })
	t.Run("NotFound", func(t *testing.T) { testNotFound(t, open) })
	t.Run("Reopen", func(t *testing.T) { testReopen(t, open) })
	t.Run("Empty", func(t *testing.T) { testEmpty(t, open) })
}

// awkward holds values whose decimal form is long or special.
var awkward = []float64{
	0, -0.5, 1.0 / 3, math.Pi, -math.E, 1e-300, 6.02214076e23,
	math.MaxFloat64, math.SmallestNonzeroFloat64, 0.1 + 0.2,
}

func testMatrixRoundTrip(t *testing.T, open Opener) {
	ctx := context.Background()
	s := open(t, "matrix")
	defer s.Close()

	m := [][]float64{awkward, awkward[:3], {42}}
	require.NoError(t, s.SaveMatrix(ctx, "m", m))

	got, err := s.LoadMatrix(ctx, "m")
	require.NoError(t, err)
	requireBitEqualRows(t, m, got)
}

func testVectorRoundTrip(t *testing.T, open Opener) {
	ctx := context.Background()
	s := open(t, "vector")
	defer s.Close()

	require.NoError(t, s.SaveVector(ctx, "v", awkward))
	got, err := s.LoadVector(ctx, "v")
	require.NoError(t, err)
	requireBitEqual(t, awkward, got)
}

func testOverwrite(t *testing.T, open Opener) {
	ctx := context.Background()
	s := open(t, "overwrite")
	defer s.Close()

	require.NoError(t, s.SaveVector(ctx, "v", []float64{1, 2, 3}))
	require.NoError(t, s.SaveVector(ctx, "v", []float64{4}))
	got, err := s.LoadVector(ctx, "v")
	require.NoError(t, err)
	assert.Equal(t, []float64{4}, got)

	require.NoError(t, s.SaveMatrix(ctx, "m", [][]float64{{1, 2}, {3, 4}}))
	require.NoError(t, s.SaveMatrix(ctx, "m", [][]float64{{5}}))
	rows, err := s.LoadMatrix(ctx, "m")
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{5}}, rows)
}

func testNotFound(t *testing.T, open Opener) {
	ctx := context.Background()
	s := open(t, "missing")
	defer s.Close()

	_, err := s.LoadMatrix(ctx, "nope")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.LoadVector(ctx, "nope")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func testReopen(t *testing.T, open Opener) {
	ctx := context.Background()
	s := open(t, "reopen")
	require.NoError(t, s.SaveMatrix(ctx, store.KeyFeatures, [][]float64{{1, 2}, {3, 4}}))
	require.NoError(t, s.SaveVector(ctx, store.KeyTargets, []float64{0.5, 0.25}))
	require.NoError(t, s.Close())

	s = open(t, "reopen")
	defer s.Close()

	x, err := s.LoadMatrix(ctx, store.KeyFeatures)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, x)

	v, err := s.LoadVector(ctx, store.KeyTargets)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.25}, v)
}

func testEmpty(t *testing.T, open Opener) {
	ctx := context.Background()
	s := open(t, "empty")
	defer s.Close()

	require.NoError(t, s.SaveVector(ctx, "v", nil))
	v, err := s.LoadVector(ctx, "v")
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, s.SaveMatrix(ctx, "m", nil))
	m, err := s.LoadMatrix(ctx, "m")
	require.NoError(t, err)
	assert.Empty(t, m)
}

func requireBitEqual(t *testing.T, want, got []float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.Equal(t, math.Float64bits(want[i]), math.Float64bits(got[i]),
			"index %d: got %v, want %v", i, got[i], want[i])
	}
}

func requireBitEqualRows(t *testing.T, want, got [][]float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		requireBitEqual(t, want[i], got[i])
	}
}
