package store

import (
	"fmt"
	"sync"

	"github.com/Tanfilov/democrac-server/pkg/types"
)

// MemoryStore implements Store using in-memory data structures.
// Used for ":memory:" paths and in tests.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	runs   []*types.Run
}

// NewMemory creates a new in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

// AddRun stores a copy of run and returns its assigned ID.
func (m *MemoryStore) AddRun(run *types.Run) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *run
	stored.ID = m.nextID
	stored.Assignments = append([]types.Assignment(nil), run.Assignments...)
	stored.Unmatched = append([]string(nil), run.Unmatched...)

	m.nextID++
	m.runs = append(m.runs, &stored)
	return stored.ID, nil
}

// GetRun retrieves one run by ID.
func (m *MemoryStore) GetRun(id int64) (*types.Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, run := range m.runs {
		if run.ID == id {
			return run, nil
		}
	}
	return nil, fmt.Errorf("run %d not found", id)
}

// GetLatestRun retrieves the most recent run.
func (m *MemoryStore) GetLatestRun() (*types.Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.runs) == 0 {
		return nil, ErrNoRuns
	}
	return m.runs[len(m.runs)-1], nil
}

// GetRuns retrieves all runs, oldest first.
func (m *MemoryStore) GetRuns() ([]*types.Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	runs := make([]*types.Run, len(m.runs))
	copy(runs, m.runs)
	return runs, nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error {
	return nil
}
