// Package sqlite implements store.ArrayStore on a SQLite database using the
// pure-Go modernc.org/sqlite driver.
//
// Arrays are kept in one table keyed by (kind, key). Values are stored as
// little-endian IEEE 754 blobs, so loads are bit-exact. Every save records
// the run ID of the writer and a timestamp.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure-Go SQLite driver

	"github.com/cwbudde/algo-curves/store"
)

const (
	kindMatrix = "matrix"
	kindVector = "vector"
)

// Compile-time interface guard.
var _ store.ArrayStore = (*Store)(nil)

// Store is a SQLite-backed ArrayStore.
type Store struct {
	db    *sql.DB
	runID string
}

// Option configures a Store.
type Option func(*Store)

// WithRunID sets the run ID recorded with every save. By default a random
// UUID is generated per Open.
func WithRunID(id string) Option {
	return func(s *Store) {
		if id != "" {
			s.runID = id
		}
	}
}

// Open opens (or creates) the database at path and ensures the schema.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}

	// SQLite performs best with a single write connection.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %q: %w", path, err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec %q: %w", p, err)
		}
	}

	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS arrays (
			kind     TEXT     NOT NULL CHECK (kind IN ('matrix', 'vector')),
			key      TEXT     NOT NULL,
			shape    BLOB     NOT NULL,
			data     BLOB     NOT NULL,
			run_id   TEXT     NOT NULL,
			saved_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (kind, key)
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create arrays table: %w", err)
	}

	s := &Store{db: db, runID: uuid.NewString()}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// RunID returns the run ID recorded with saves.
func (s *Store) RunID() string { return s.runID }

func (s *Store) SaveMatrix(ctx context.Context, key string, m [][]float64) error {
	lengths := make([]int, len(m))
	total := 0
	for i, row := range m {
		lengths[i] = len(row)
		total += len(row)
	}
	flat := make([]float64, 0, total)
	for _, row := range m {
		flat = append(flat, row...)
	}
	return s.save(ctx, kindMatrix, key, encodeShape(lengths), encodeFloats(flat))
}

func (s *Store) LoadMatrix(ctx context.Context, key string) ([][]float64, error) {
	shapeBlob, dataBlob, err := s.load(ctx, kindMatrix, key)
	if err != nil {
		return nil, err
	}
	lengths, err := decodeShape(shapeBlob)
	if err != nil {
		return nil, fmt.Errorf("sqlite: %s: %w", key, err)
	}
	flat, err := decodeFloats(dataBlob)
	if err != nil {
		return nil, fmt.Errorf("sqlite: %s: %w", key, err)
	}

	out := make([][]float64, len(lengths))
	off := 0
	for i, n := range lengths {
		if off+n > len(flat) {
			return nil, fmt.Errorf("sqlite: %s: %w", key, errCorrupt)
		}
		out[i] = flat[off : off+n : off+n]
		off += n
	}
	if off != len(flat) {
		return nil, fmt.Errorf("sqlite: %s: %w", key, errCorrupt)
	}
	return out, nil
}

func (s *Store) SaveVector(ctx context.Context, key string, v []float64) error {
	return s.save(ctx, kindVector, key, encodeShape([]int{len(v)}), encodeFloats(v))
}

func (s *Store) LoadVector(ctx context.Context, key string) ([]float64, error) {
	_, dataBlob, err := s.load(ctx, kindVector, key)
	if err != nil {
		return nil, err
	}
	v, err := decodeFloats(dataBlob)
	if err != nil {
		return nil, fmt.Errorf("sqlite: %s: %w", key, err)
	}
	return v, nil
}

// Keys lists the stored keys of one kind ("matrix" or "vector").
func (s *Store) Keys(ctx context.Context, kind string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key FROM arrays WHERE kind = ? ORDER BY key", kind)
	if err != nil {
		return nil, fmt.Errorf("list %s keys: %w", kind, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) save(ctx context.Context, kind, key string, shape, data []byte) error {
	return s.tx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO arrays (kind, key, shape, data, run_id, saved_at)
			VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT (kind, key) DO UPDATE SET
				shape = excluded.shape,
				data = excluded.data,
				run_id = excluded.run_id,
				saved_at = excluded.saved_at
		`, kind, key, shape, data, s.runID)
		if err != nil {
			return fmt.Errorf("save %s %q: %w", kind, key, err)
		}
		return nil
	})
}

func (s *Store) load(ctx context.Context, kind, key string) (shape, data []byte, err error) {
	err = s.db.QueryRowContext(ctx,
		"SELECT shape, data FROM arrays WHERE kind = ? AND key = ?", kind, key,
	).Scan(&shape, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("%w: %s", store.ErrNotFound, key)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load %s %q: %w", kind, key, err)
	}
	return shape, data, nil
}

// tx executes fn within a transaction, committing if fn returns nil.
func (s *Store) tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original: %w)", rbErr, err)
		}
		return err
	}

	return tx.Commit()
}
