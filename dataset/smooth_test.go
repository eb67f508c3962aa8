package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cwbudde/algo-curves/dsp/smooth"
	"github.com/cwbudde/algo-curves/internal/testutil"
)

func TestSmoothYEvenWindowWarns(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	rows := testutil.GaussianCurves(200, 20, 1, 50, 150)

	ds, err := New(testutil.Features(2, 1), mustCurves(t, rows), WithLogger(zap.New(core)))
	require.NoError(t, err)

	out, err := ds.SmoothY(mustCurves(t, rows), smooth.SavitzkyGolay, smooth.WithWindow(10))
	require.NoError(t, err)
	assert.Equal(t, 2, out.NumCurves())
	assert.True(t, ds.Smoothed())

	warnings := logs.FilterMessage("smoothing parameter corrected").All()
	require.Len(t, warnings, 1)
	fields := warnings[0].ContextMap()
	assert.Equal(t, int64(10), fields["requested"])
	assert.Equal(t, int64(11), fields["used"])
}

func TestSmoothYPolyOrderTooLarge(t *testing.T) {
	rows := testutil.GaussianCurves(100, 10, 1, 50)
	ds, err := New(testutil.Features(1, 1), mustCurves(t, rows))
	require.NoError(t, err)

	for _, opts := range [][]smooth.Option{
		{smooth.WithWindow(5), smooth.WithPolyOrder(5)},
		{smooth.WithWindow(5), smooth.WithPolyOrder(9)},
	} {
		_, err := ds.SmoothY(mustCurves(t, rows), smooth.SavitzkyGolay, opts...)
		require.ErrorIs(t, err, ErrValidation)
		require.ErrorIs(t, err, smooth.ErrPolyOrder)
	}
	assert.Equal(t, Raw, ds.State())
}

func TestSmoothYCurveTooShort(t *testing.T) {
	y := mustCurves(t, [][]float64{{1, 2, 3, 4, 5}})
	ds, err := New(testutil.Features(1, 1), y)
	require.NoError(t, err)

	_, err = ds.SmoothY(y, smooth.SavitzkyGolay, smooth.WithWindow(7))
	require.ErrorIs(t, err, ErrValidation)
	require.ErrorIs(t, err, smooth.ErrCurveTooShort)
	assert.False(t, ds.Smoothed())
}

func TestSmoothYStableOnPolynomials(t *testing.T) {
	rows := [][]float64{
		testutil.Polynomial(1000, 0.5, -1, 2),
		testutil.Polynomial(1000, 1, 0, -3, 2),
	}
	y := mustCurves(t, rows)
	ds, err := New(testutil.Features(2, 1), y)
	require.NoError(t, err)

	once, err := ds.SmoothY(y, smooth.SavitzkyGolay, smooth.WithWindow(101))
	require.NoError(t, err)
	twice, err := ds.SmoothY(once, smooth.SavitzkyGolay, smooth.WithWindow(101))
	require.NoError(t, err)

	testutil.RequireRowsNearlyEqual(t, once.Curves(), rows, 1e-9)
	testutil.RequireRowsNearlyEqual(t, twice.Curves(), once.Curves(), 1e-9)
}

func TestSmoothYFiltersEveryRow(t *testing.T) {
	rows := [][]float64{
		testutil.DeterministicNoise(1, 1, 64),
		testutil.DeterministicNoise(2, 1, 64),
		testutil.DeterministicNoise(3, 1, 64),
	}
	y := mustCurves(t, rows)
	ds, err := New(testutil.Features(3, 1), y, WithWorkers(2))
	require.NoError(t, err)

	out, err := ds.SmoothY(y, smooth.MovingAverage, smooth.WithWindow(9))
	require.NoError(t, err)

	f, err := smooth.New(smooth.MovingAverage, smooth.WithWindow(9))
	require.NoError(t, err)
	for i, row := range rows {
		want, err := f.Apply(row)
		require.NoError(t, err)
		testutil.RequireSliceNearlyEqual(t, out.Curve(i), want, 0)
		assert.NotEqual(t, row, out.Curve(i), "row %d left unfiltered", i)
	}

	// Input is untouched.
	_, stored := ds.Data()
	assert.Equal(t, rows, stored.Curves())
}

func TestSmoothYSingleCurve(t *testing.T) {
	curve := testutil.Add(testutil.Gaussian(300, 150, 30, 1), testutil.DeterministicNoise(4, 0.05, 300))
	y := mustCurve(t, curve)
	ds, err := New(testutil.Features(300, 1), y)
	require.NoError(t, err)

	out, err := ds.SmoothY(y, smooth.SavitzkyGolay, smooth.WithWindow(21))
	require.NoError(t, err)
	assert.Equal(t, ShapeCurve, out.Shape())
	assert.Equal(t, 300, out.Len())
}

func TestSmoothYRejectsZeroTargets(t *testing.T) {
	ds, err := New(testutil.Features(1, 1), mustCurves(t, [][]float64{{1, 2, 3}}))
	require.NoError(t, err)

	_, err = ds.SmoothY(Targets{}, smooth.SavitzkyGolay, smooth.WithWindow(3))
	require.ErrorIs(t, err, ErrEmptyTargets)
}
