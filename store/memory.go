package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/cwbudde/algo-curves/dsp/core"
)

// Memory is an in-process ArrayStore. It is safe for concurrent use.
type Memory struct {
	mu       sync.RWMutex
	matrices map[string][][]float64
	vectors  map[string][]float64
	closed   bool
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		matrices: make(map[string][][]float64),
		vectors:  make(map[string][]float64),
	}
}

func (m *Memory) SaveMatrix(ctx context.Context, key string, rows [][]float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	rows = core.CloneRows(rows)
	if rows == nil {
		rows = [][]float64{}
	}
	m.matrices[key] = rows
	return nil
}

func (m *Memory) LoadMatrix(ctx context.Context, key string) ([][]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	rows, ok := m.matrices[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return core.CloneRows(rows), nil
}

func (m *Memory) SaveVector(ctx context.Context, key string, v []float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.vectors[key] = append([]float64{}, v...)
	return nil
}

func (m *Memory) LoadVector(ctx context.Context, key string) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	v, ok := m.vectors[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return append([]float64{}, v...), nil
}

// Close releases the stored arrays. Later calls fail with ErrClosed.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.matrices = nil
	m.vectors = nil
	return nil
}
