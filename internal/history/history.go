// Package history keeps the bounded, newest-first log of settled scans. A
// store is either locally accumulated (Record on every settle) or backed by a
// remote fetch (Hydrate replaces the contents, Record is a no-op); the mode
// is fixed at construction and never mixed.
package history

import (
	"sync"

	"github.com/ayeshahabib/scamshield/internal/model"
)

// Capacity is the fixed maximum number of retained entries.
const Capacity = 10

// Store is an append-only, capacity-bounded scan log.
type Store struct {
	mu      sync.Mutex
	remote  bool
	entries []model.ScanResult
}

// NewLocalStore creates an empty store that accumulates via Record.
func NewLocalStore() *Store {
	return &Store{}
}

// NewRemoteStore creates a store that mirrors the last successful remote
// fetch. Record is a no-op on it.
func NewRemoteStore() *Store {
	return &Store{remote: true}
}

// Record inserts a settled scan at the head, evicting the oldest entry when
// capacity is exceeded. Insert and evict happen under one lock so readers
// never observe a partially evicted log.
func (s *Store) Record(r model.ScanResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.remote {
		return
	}
	s.entries = append([]model.ScanResult{r.Copy()}, s.entries...)
	if len(s.entries) > Capacity {
		s.entries = s.entries[:Capacity]
	}
}

// Hydrate replaces the contents of a remote-backed store with a fetched
// newest-first slice, truncated to capacity. No-op on local stores, which
// have Record as their only mutation path.
func (s *Store) Hydrate(entries []model.ScanResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.remote {
		return
	}
	cp := make([]model.ScanResult, 0, len(entries))
	for _, e := range entries {
		cp = append(cp, e.Copy())
		if len(cp) == Capacity {
			break
		}
	}
	s.entries = cp
}

// All returns a newest-first snapshot. Mutating the returned slice or its
// trigger lists does not affect the store.
func (s *Store) All() []model.ScanResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ScanResult, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.Copy())
	}
	return out
}

// Len reports the number of retained entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
