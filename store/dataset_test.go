package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-curves/dataset"
	"github.com/cwbudde/algo-curves/dsp/smooth"
	"github.com/cwbudde/algo-curves/internal/testutil"
	"github.com/cwbudde/algo-curves/store"
)

var prep = dataset.Prep{
	Method: smooth.SavitzkyGolay,
	Smooth: []smooth.Option{smooth.WithWindow(31)},
}

func rawStore(t *testing.T, features [][]float64, centers ...float64) *store.Memory {
	t.Helper()
	s := store.NewMemory()
	curves := testutil.GaussianCurves(1000, 30, 1, centers...)
	require.NoError(t, store.SaveRaw(context.Background(), s, features, curves))
	return s
}

func TestSaveDatasetRequiresTargets(t *testing.T) {
	ctx := context.Background()
	s := rawStore(t, testutil.Features(2, 2), 300, 600)

	ds, err := store.LoadDataset(ctx, s)
	require.NoError(t, err)
	require.ErrorIs(t, store.SaveDataset(ctx, s, ds), store.ErrNoTargets)
}

func TestSaveAndLoadDataset(t *testing.T) {
	ctx := context.Background()
	s := rawStore(t, testutil.Features(3, 2), 200, 500, 800)

	ds, err := store.LoadDataset(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, dataset.Raw, ds.State())
	_, ok := ds.Ymax()
	assert.False(t, ok)

	require.NoError(t, ds.PrepData(prep))
	require.NoError(t, store.SaveDataset(ctx, s, ds))

	targets, err := s.LoadVector(ctx, store.KeyTargets)
	require.NoError(t, err)
	want, _ := ds.Ymax()
	assert.Equal(t, want, targets)

	again, err := store.LoadDataset(ctx, s)
	require.NoError(t, err)
	got, ok := again.Ymax()
	require.True(t, ok)
	assert.Equal(t, want, got)

	// Curves in the store stay raw.
	_, y := again.Data()
	assert.Equal(t, testutil.GaussianCurves(1000, 30, 1, 200, 500, 800), y.Curves())
}

func TestExtendDatasetCurves(t *testing.T) {
	ctx := context.Background()
	base := rawStore(t, testutil.Features(2, 2), 200, 500)
	more := rawStore(t, [][]float64{{9, 9}}, 700)

	ds, err := store.LoadDataset(ctx, base)
	require.NoError(t, err)
	require.NoError(t, ds.PrepData(prep))

	features, curves, err := store.ExtendDataset(ctx, more, ds, store.ExtendCurves)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{9, 9}}, features)
	assert.Len(t, curves, 1)

	assert.Equal(t, 3, ds.Len())
	ymax, _ := ds.Ymax()
	assert.InDeltaSlice(t, []float64{1, 1, 1}, ymax, 0.01)
}

func TestExtendDatasetMaximaRoundTrip(t *testing.T) {
	ctx := context.Background()
	base := rawStore(t, testutil.Features(2, 2), 200, 500)

	more := store.NewMemory()
	require.NoError(t, more.SaveMatrix(ctx, store.KeyFeatures, [][]float64{{7, 7}, {8, 8}}))
	require.NoError(t, more.SaveVector(ctx, store.KeyTargets, []float64{0.4, 0.3}))

	ds, err := store.LoadDataset(ctx, base)
	require.NoError(t, err)
	require.NoError(t, ds.PrepData(prep))

	_, curves, err := store.ExtendDataset(ctx, more, ds, store.ExtendMaxima)
	require.NoError(t, err)
	assert.Nil(t, curves)
	assert.Equal(t, []int{2, 3}, ds.PeakOnlyRows())

	require.NoError(t, store.SaveDataset(ctx, base, ds))

	restored, err := store.LoadDataset(ctx, base)
	require.NoError(t, err)
	assert.Equal(t, 4, restored.Len())
	assert.Equal(t, []int{2, 3}, restored.PeakOnlyRows())

	ymax, _ := restored.Ymax()
	require.Len(t, ymax, 4)
	assert.Equal(t, []float64{0.4, 0.3}, ymax[2:])

	// The restored dataset can be prepared again.
	require.NoError(t, restored.PrepData(prep))
	again, _ := restored.Ymax()
	assert.Equal(t, ymax, again)
}

func TestLoadDatasetMissingKeys(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	_, err := store.LoadDataset(ctx, s)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.SaveMatrix(ctx, store.KeyFeatures, testutil.Features(1, 1)))
	_, err = store.LoadDataset(ctx, s)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestLoadDatasetRejectsBadPeakOnlyRows(t *testing.T) {
	ctx := context.Background()
	s := rawStore(t, testutil.Features(2, 1), 300, 600)
	require.NoError(t, s.SaveVector(ctx, store.KeyPeakOnly, []float64{0.5}))

	_, err := store.LoadDataset(ctx, s)
	require.Error(t, err)
}

func TestExtendKindString(t *testing.T) {
	assert.Equal(t, "curves", store.ExtendCurves.String())
	assert.Equal(t, "maxima", store.ExtendMaxima.String())
}
