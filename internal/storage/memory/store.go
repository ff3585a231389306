// Package memory is the in-memory EntryStore backend, the default and the
// reference implementation for entry ordering semantics.
package memory

import (
	"context"
	"sync"

	"appecon/internal/core"
	"appecon/internal/storage"
)

type Store struct {
	mu      sync.Mutex
	entries []core.LedgerEntry
}

func New() *Store {
	return &Store{}
}

func (s *Store) Append(_ context.Context, e core.LedgerEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
	return nil
}

// All returns a copy so callers cannot mutate internal state.
func (s *Store) All(_ context.Context) ([]core.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make([]core.LedgerEntry, len(s.entries))
	copy(copied, s.entries)
	return copied, nil
}

func (s *Store) Get(_ context.Context, id string) (core.LedgerEntry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.ID == id {
			return e, true, nil
		}
	}
	return core.LedgerEntry{}, false, nil
}

func (s *Store) Replace(_ context.Context, e core.LedgerEntry) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.entries {
		if s.entries[i].ID == e.ID {
			s.entries[i] = e
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) Close() error {
	return nil
}

// Compile-time check that the store satisfies the port.
var _ storage.EntryStore = (*Store)(nil)
