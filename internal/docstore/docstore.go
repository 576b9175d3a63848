// Package docstore holds the chunks of the most recently uploaded document
// batch in process memory. A new upload replaces all prior chunks; nothing
// survives a restart.
package docstore

import (
	"sync"
)

// Chunk is a retrieval unit: a bounded span of extracted document text.
// Immutable once stored.
type Chunk struct {
	Source string `json:"source"`
	Index  int    `json:"index"`
	Text   string `json:"text"`
}

// Store is the process-wide chunk store. Replace, Clear, and Snapshot are
// guarded by a single lock; readers work on snapshot copies so no lock is
// held across the external completion call.
type Store struct {
	mu         sync.RWMutex
	chunks     []Chunk
	generation uint64
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// Replace swaps in a new chunk sequence, superseding all prior chunks,
// and bumps the generation so cached answers for older content go stale.
func (s *Store) Replace(chunks []Chunk) {
	cp := make([]Chunk, len(chunks))
	copy(cp, chunks)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = cp
	s.generation++
}

// Clear empties the store.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = nil
	s.generation++
}

// Snapshot returns a copy of the current chunk sequence, safe to read
// without holding the store lock.
func (s *Store) Snapshot() []Chunk {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp := make([]Chunk, len(s.chunks))
	copy(cp, s.chunks)
	return cp
}

// Ready reports whether any chunks are loaded.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks) > 0
}

// Len returns the number of loaded chunks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks)
}

// Generation returns a counter incremented on every Replace or Clear.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}
