// Package xlsx implements store.ArrayStore on an Excel workbook using
// excelize.
//
// Each array lives on its own worksheet named "m_<key>" for matrices and
// "v_<key>" for vectors. A matrix sheet starts with a ("rows", n) header
// followed by one sheet row per matrix row, led by the row length. A vector
// sheet starts with a ("len", n) header and lists the values down column A.
// Values are written as numeric cells in shortest round-trip form, so loads
// are exact. The workbook is written to disk on Flush and Close.
package xlsx

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/cwbudde/algo-curves/store"
)

const (
	metaSheet    = "meta"
	matrixPrefix = "m_"
	vectorPrefix = "v_"

	maxKeyLength = excelize.MaxSheetNameLength - len(matrixPrefix)
	maxRowLength = excelize.MaxColumns - 1
)

var (
	// ErrKey reports a key that cannot be used as a sheet name.
	ErrKey = errors.New("xlsx: invalid key")
	// ErrRowTooLong reports a matrix row wider than a worksheet.
	ErrRowTooLong = errors.New("xlsx: matrix row exceeds sheet width")

	errCorrupt = errors.New("xlsx: corrupt sheet")
)

var _ store.ArrayStore = (*Store)(nil)

// Store is an Excel-backed ArrayStore. It is safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	f      *excelize.File
	path   string
	runID  string
	dirty  bool
	closed bool
}

// Option configures a Store.
type Option func(*Store)

// WithRunID sets the run ID written to the meta sheet on flush.
func WithRunID(id string) Option {
	return func(s *Store) {
		if id != "" {
			s.runID = id
		}
	}
}

// Open opens the workbook at path, or starts a new one if the file does not
// exist yet.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{path: path, runID: uuid.NewString()}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	f, err := excelize.OpenFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		f = excelize.NewFile()
		if err := f.SetSheetName(f.GetSheetName(0), metaSheet); err != nil {
			f.Close()
			return nil, fmt.Errorf("xlsx: init %q: %w", path, err)
		}
		s.dirty = true
	case err != nil:
		return nil, fmt.Errorf("xlsx: open %q: %w", path, err)
	}
	s.f = f

	if idx, _ := f.GetSheetIndex(metaSheet); idx == -1 {
		if _, err := f.NewSheet(metaSheet); err != nil {
			f.Close()
			return nil, fmt.Errorf("xlsx: init %q: %w", path, err)
		}
	}
	return s, nil
}

// RunID returns the run ID written to the meta sheet.
func (s *Store) RunID() string { return s.runID }

func (s *Store) SaveMatrix(ctx context.Context, key string, m [][]float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	sheet, err := sheetName(matrixPrefix, key)
	if err != nil {
		return err
	}
	for i, row := range m {
		if len(row) > maxRowLength {
			return fmt.Errorf("%w: row %d has %d values, limit %d", ErrRowTooLong, i, len(row), maxRowLength)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.resetSheet(sheet); err != nil {
		return err
	}
	if err := s.f.SetSheetRow(sheet, "A1", &[]any{"rows", len(m)}); err != nil {
		return fmt.Errorf("xlsx: %s: %w", key, err)
	}
	for i, row := range m {
		r := i + 2
		if err := s.setFloat(sheet, 1, r, float64(len(row))); err != nil {
			return fmt.Errorf("xlsx: %s: %w", key, err)
		}
		for j, v := range row {
			if err := s.setFloat(sheet, j+2, r, v); err != nil {
				return fmt.Errorf("xlsx: %s: %w", key, err)
			}
		}
	}
	return nil
}

func (s *Store) LoadMatrix(ctx context.Context, key string) ([][]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sheet, err := sheetName(matrixPrefix, key)
	if err != nil {
		return nil, err
	}

	rows, err := s.rows(sheet, key)
	if err != nil {
		return nil, err
	}
	n, err := header(rows, "rows")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errCorrupt, key, err)
	}
	if len(rows) != n+1 {
		return nil, fmt.Errorf("%w: %s: %d rows, header says %d", errCorrupt, key, len(rows)-1, n)
	}

	out := make([][]float64, n)
	for i, cells := range rows[1:] {
		if len(cells) == 0 {
			return nil, fmt.Errorf("%w: %s: row %d has no length", errCorrupt, key, i)
		}
		width, err := strconv.Atoi(cells[0])
		if err != nil || width != len(cells)-1 {
			return nil, fmt.Errorf("%w: %s: row %d length mismatch", errCorrupt, key, i)
		}
		row, err := parseFloats(cells[1:])
		if err != nil {
			return nil, fmt.Errorf("%w: %s: row %d: %w", errCorrupt, key, i, err)
		}
		out[i] = row
	}
	return out, nil
}

func (s *Store) SaveVector(ctx context.Context, key string, v []float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	sheet, err := sheetName(vectorPrefix, key)
	if err != nil {
		return err
	}
	if len(v)+1 > excelize.TotalRows {
		return fmt.Errorf("xlsx: %s: %d values exceed the sheet height", key, len(v))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.resetSheet(sheet); err != nil {
		return err
	}
	if err := s.f.SetSheetRow(sheet, "A1", &[]any{"len", len(v)}); err != nil {
		return fmt.Errorf("xlsx: %s: %w", key, err)
	}
	for i, x := range v {
		if err := s.setFloat(sheet, 1, i+2, x); err != nil {
			return fmt.Errorf("xlsx: %s: %w", key, err)
		}
	}
	return nil
}

func (s *Store) LoadVector(ctx context.Context, key string) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sheet, err := sheetName(vectorPrefix, key)
	if err != nil {
		return nil, err
	}

	rows, err := s.rows(sheet, key)
	if err != nil {
		return nil, err
	}
	n, err := header(rows, "len")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errCorrupt, key, err)
	}
	if len(rows) != n+1 {
		return nil, fmt.Errorf("%w: %s: %d values, header says %d", errCorrupt, key, len(rows)-1, n)
	}

	cells := make([]string, n)
	for i, row := range rows[1:] {
		if len(row) != 1 {
			return nil, fmt.Errorf("%w: %s: row %d", errCorrupt, key, i)
		}
		cells[i] = row[0]
	}
	v, err := parseFloats(cells)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errCorrupt, key, err)
	}
	return v, nil
}

// Flush writes pending changes to disk.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return store.ErrClosed
	}
	return s.flush()
}

// Close flushes pending changes and releases the workbook.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	err := s.flush()
	if cerr := s.f.Close(); err == nil {
		err = cerr
	}
	return err
}

func (s *Store) flush() error {
	if !s.dirty {
		return nil
	}
	if err := s.f.SetSheetRow(metaSheet, "A1", &[]any{"run_id", s.runID}); err != nil {
		return fmt.Errorf("xlsx: write run id: %w", err)
	}
	if err := s.f.SaveAs(s.path); err != nil {
		return fmt.Errorf("xlsx: save %q: %w", s.path, err)
	}
	s.dirty = false
	return nil
}

// resetSheet replaces sheet with an empty one. Callers hold s.mu.
func (s *Store) resetSheet(sheet string) error {
	if s.closed {
		return store.ErrClosed
	}
	if err := s.f.DeleteSheet(sheet); err != nil {
		return fmt.Errorf("xlsx: delete sheet %q: %w", sheet, err)
	}
	if _, err := s.f.NewSheet(sheet); err != nil {
		return fmt.Errorf("xlsx: new sheet %q: %w", sheet, err)
	}
	s.dirty = true
	return nil
}

func (s *Store) setFloat(sheet string, col, row int, v float64) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return s.f.SetCellFloat(sheet, cell, v, -1, 64)
}

func (s *Store) rows(sheet, key string) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, store.ErrClosed
	}
	if idx, _ := s.f.GetSheetIndex(sheet); idx == -1 {
		return nil, fmt.Errorf("%w: %s", store.ErrNotFound, key)
	}
	rows, err := s.f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("xlsx: read %q: %w", sheet, err)
	}
	return rows, nil
}

func sheetName(prefix, key string) (string, error) {
	if key == "" || len(key) > maxKeyLength {
		return "", fmt.Errorf("%w: %q must be 1 to %d bytes", ErrKey, key, maxKeyLength)
	}
	for _, r := range key {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']', '\'':
			return "", fmt.Errorf("%w: %q contains %q", ErrKey, key, r)
		}
	}
	return prefix + key, nil
}

func header(rows [][]string, label string) (int, error) {
	if len(rows) == 0 || len(rows[0]) != 2 || rows[0][0] != label {
		return 0, fmt.Errorf("missing %q header", label)
	}
	n, err := strconv.Atoi(rows[0][1])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("bad %q header %q", label, rows[0][1])
	}
	return n, nil
}

func parseFloats(cells []string) ([]float64, error) {
	out := make([]float64, len(cells))
	for i, c := range cells {
		v, err := strconv.ParseFloat(c, 64)
		if err != nil {
			return nil, fmt.Errorf("cell %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}
