package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cwbudde/algo-curves/store"
	"github.com/cwbudde/algo-curves/store/sqlite"
	"github.com/cwbudde/algo-curves/store/xlsx"
)

var errBackend = errors.New("unsupported store extension")

// openStore opens the backend matching the file extension of path.
func openStore(ctx context.Context, path, runID string) (store.ArrayStore, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".db", ".sqlite", ".sqlite3":
		return sqlite.Open(ctx, path, sqlite.WithRunID(runID))
	case ".xlsx":
		return xlsx.Open(path, xlsx.WithRunID(runID))
	default:
		return nil, fmt.Errorf("%w %q (want .db, .sqlite, .sqlite3 or .xlsx)", errBackend, ext)
	}
}
