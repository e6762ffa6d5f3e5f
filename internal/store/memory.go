package store

import (
	"sync"
)

// MemoryStore is an in-memory implementation of [Store].
type MemoryStore struct {
	mu   sync.RWMutex
	snap Snapshot
	set  bool
}

// NewMemoryStore creates a new in-memory [Store] implementation.
//
// The store is immediately ready for use. No cleanup is required when done.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Update stores a copy of snap, replacing any previous snapshot.
func (m *MemoryStore) Update(snap Snapshot) {
	snap.Results = cloneResults(snap.Results)

	m.mu.Lock()
	m.snap = snap
	m.set = true
	m.mu.Unlock()
}

// Latest returns a copy of the stored snapshot.
// Modifying the returned results does not affect the store.
func (m *MemoryStore) Latest() (Snapshot, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.set {
		return Snapshot{}, false
	}
	snap := m.snap
	snap.Results = cloneResults(m.snap.Results)
	return snap, true
}

func cloneResults[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
