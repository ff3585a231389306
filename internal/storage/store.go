// Package storage defines the entry persistence port shared by the memory
// and sqlite backends.
package storage

import (
	"context"

	"appecon/internal/core"
)

// EntryStore owns the ledger entry collection. All reads return entries in
// insertion order; List-style date sorting is the ledger service's job.
// Lookups signal absence with a false boolean, never an error.
type EntryStore interface {
	// Append adds the entry at the end of the collection.
	Append(ctx context.Context, e core.LedgerEntry) error
	// All returns every entry in insertion order.
	All(ctx context.Context) ([]core.LedgerEntry, error)
	// Get returns the entry with the given id, if any.
	Get(ctx context.Context, id string) (core.LedgerEntry, bool, error)
	// Replace overwrites the stored entry with the same ID, keeping its
	// position, and reports whether it existed.
	Replace(ctx context.Context, e core.LedgerEntry) (bool, error)
	// Delete removes the entry and reports whether it existed.
	Delete(ctx context.Context, id string) (bool, error)
	Close() error
}
