package xlsx

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/cwbudde/algo-curves/store"
	"github.com/cwbudde/algo-curves/store/storetest"
)

func TestContract(t *testing.T) {
	dir := t.TempDir()
	storetest.Run(t, func(t *testing.T, name string) store.ArrayStore {
		s, err := Open(filepath.Join(dir, name+".xlsx"))
		require.NoError(t, err)
		return s
	})
}

func TestSheetLayout(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "layout.xlsx")

	s, err := Open(path, WithRunID("run-7"))
	require.NoError(t, err)
	require.NoError(t, s.SaveMatrix(ctx, store.KeyFeatures, [][]float64{{1, 2.5}, {}}))
	require.NoError(t, s.SaveVector(ctx, store.KeyTargets, []float64{0.25, 4}))
	require.NoError(t, s.Close())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"meta", "m_features", "v_targets"}, f.GetSheetList())

	meta, err := f.GetRows("meta")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"run_id", "run-7"}}, meta)

	m, err := f.GetRows("m_features", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"rows", "2"}, {"2", "1", "2.5"}, {"0"}}, m)

	v, err := f.GetRows("v_targets", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"len", "2"}, {"0.25"}, {"4"}}, v)
}

func TestInvalidKeys(t *testing.T) {
	ctx := context.Background()
	s, err := Open(filepath.Join(t.TempDir(), "keys.xlsx"))
	require.NoError(t, err)
	defer s.Close()

	for _, key := range []string{"", "a/b", "sheet[1]", "this-key-is-far-too-long-for-excel"} {
		assert.ErrorIs(t, s.SaveVector(ctx, key, []float64{1}), ErrKey, "key %q", key)
		_, err := s.LoadMatrix(ctx, key)
		assert.ErrorIs(t, err, ErrKey, "key %q", key)
	}
}

func TestRowTooLong(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "wide.xlsx"))
	require.NoError(t, err)
	defer s.Close()

	wide := make([]float64, maxRowLength+1)
	err = s.SaveMatrix(context.Background(), store.KeyCurves, [][]float64{wide})
	assert.ErrorIs(t, err, ErrRowTooLong)
}

func TestClosedStore(t *testing.T) {
	ctx := context.Background()
	s, err := Open(filepath.Join(t.TempDir(), "closed.xlsx"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	assert.ErrorIs(t, s.SaveVector(ctx, "v", []float64{1}), store.ErrClosed)
	_, err = s.LoadVector(ctx, "v")
	assert.ErrorIs(t, err, store.ErrClosed)
	assert.ErrorIs(t, s.Flush(), store.ErrClosed)
	assert.NoError(t, s.Close())
}

func TestCorruptSheet(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "corrupt.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "v_targets"))
	require.NoError(t, f.SetSheetRow("v_targets", "A1", &[]any{"len", 3}))
	require.NoError(t, f.SetSheetRow("v_targets", "A2", &[]any{1.5}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.LoadVector(ctx, store.KeyTargets)
	assert.ErrorIs(t, err, errCorrupt)
}
