package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-curves/internal/testutil"
	"github.com/cwbudde/algo-curves/measure/peak"
)

func TestFindMaximumGaussian(t *testing.T) {
	curve := testutil.Gaussian(1000, 420, 50, 2.5)
	y := mustCurve(t, curve)
	ds, err := New(testutil.Features(1000, 1), y)
	require.NoError(t, err)

	ymax, err := ds.FindMaximum(y)
	require.NoError(t, err)
	require.Len(t, ymax, 1)
	assert.InDelta(t, 2.5, ymax[0], 1e-12)
	assert.True(t, ds.MaximumFound())
}

func TestFindMaximumFlatCurve(t *testing.T) {
	rows := [][]float64{
		testutil.Gaussian(1000, 500, 50, 1),
		testutil.DC(0.3, 1000),
		testutil.DC(0, 1000),
	}
	y := mustCurves(t, rows)
	ds, err := New(testutil.Features(3, 1), y)
	require.NoError(t, err)

	_, err = ds.FindMaximum(y)
	require.ErrorIs(t, err, ErrNoPeakFound)
	require.ErrorIs(t, err, peak.ErrNoPeak)

	var np *NoPeakFoundError
	require.ErrorAs(t, err, &np)
	assert.Equal(t, 1, np.Curve)
	assert.Equal(t, []int{1, 2}, FailedCurves(err))

	assert.False(t, ds.MaximumFound())
}

func TestFindMaximumHeightIsPerCurve(t *testing.T) {
	rows := [][]float64{
		testutil.Gaussian(1000, 700, 40, 10),
		testutil.Gaussian(1000, 300, 40, 1),
	}
	y := mustCurves(t, rows)
	ds, err := New(testutil.Features(2, 1), y)
	require.NoError(t, err)

	ymax, err := ds.FindMaximum(y)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{10, 1}, ymax, 1e-12)

	// A shared threshold taken from the first curve rejects the second.
	_, err = ds.FindMaximum(y, peak.WithHeight(5))
	assert.Equal(t, []int{1}, FailedCurves(err))
}

func TestFindMaximumSelectsFirstPeak(t *testing.T) {
	curve := testutil.Add(
		testutil.Gaussian(1000, 200, 30, 0.8),
		testutil.Gaussian(1000, 800, 30, 1),
	)
	y := mustCurves(t, [][]float64{curve})
	ds, err := New(testutil.Features(1, 1), y)
	require.NoError(t, err)

	ymax, err := ds.FindMaximum(y, peak.WithDistance(100))
	require.NoError(t, err)
	assert.InDelta(t, 0.8, ymax[0], 1e-9)
}

func TestFindMaximumInvalidOptions(t *testing.T) {
	y := mustCurves(t, [][]float64{{0, 1, 0}})
	ds, err := New(testutil.Features(1, 1), y)
	require.NoError(t, err)

	_, err = ds.FindMaximum(y, peak.WithDistance(0))
	require.ErrorIs(t, err, ErrValidation)
	require.ErrorIs(t, err, peak.ErrDistance)
}

func TestFindMaximumWorkerCountIndependent(t *testing.T) {
	var rows [][]float64
	for i := 0; i < 16; i++ {
		rows = append(rows, testutil.Add(
			testutil.Gaussian(600, float64(100+20*i), 25, 1+0.1*float64(i)),
			testutil.DeterministicNoise(int64(i), 0.001, 600),
		))
	}
	y := mustCurves(t, rows)

	var results [][]float64
	for _, workers := range []int{1, 3, 16} {
		ds, err := New(testutil.Features(16, 1), y, WithWorkers(workers))
		require.NoError(t, err)
		ymax, err := ds.FindMaximum(y)
		require.NoError(t, err)
		results = append(results, ymax)
	}
	assert.Equal(t, results[0], results[1])
	assert.Equal(t, results[0], results[2])
}
