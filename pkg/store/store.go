// Package store persists run history for the report command.
package store

import (
	"errors"
	"fmt"

	"github.com/Tanfilov/democrac-server/pkg/types"
)

// ErrNoRuns is returned when a datastore holds no runs yet.
var ErrNoRuns = errors.New("no runs recorded")

// Store provides persistence for reconciliation runs.
// This interface abstracts the underlying storage implementation,
// allowing for different backends (SQLite, in-memory).
type Store interface {
	// AddRun stores a run with its assignments and unmatched names,
	// returning the run ID.
	AddRun(run *types.Run) (int64, error)

	// GetRun retrieves one run by ID, fully populated.
	GetRun(id int64) (*types.Run, error)

	// GetLatestRun retrieves the most recent run.
	// Returns ErrNoRuns when the store is empty.
	GetLatestRun() (*types.Run, error)

	// GetRuns retrieves all runs, oldest first, without assignment
	// and unmatched details.
	GetRuns() ([]*types.Run, error)

	// Close closes the underlying storage.
	Close() error
}

// Config for store initialization.
type Config struct {
	// Path is the database file path.
	// Use ":memory:" for an in-memory store (useful for testing).
	Path string
}

// New creates a Store. ":memory:" paths get the in-memory backend,
// everything else SQLite.
func New(cfg Config) (Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	if cfg.Path == ":memory:" {
		return NewMemory(), nil
	}

	return NewSQLite(cfg.Path)
}
