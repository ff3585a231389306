// Package ledger owns the entry collection and applies the category advisor
// and duplicate matcher on every mutation.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"appecon/internal/advisor"
	"appecon/internal/amqp"
	"appecon/internal/core"
	"appecon/internal/match"
	"appecon/internal/storage"
)

// Service is the ledger store. A single mutex serializes every operation,
// so at most one logical mutation is in flight at a time and reads observe a
// consistent snapshot.
type Service struct {
	mu      sync.Mutex
	store   storage.EntryStore
	advisor *advisor.CategoryAdvisor
	events  *amqp.Client
}

// Patch is a partial entry update. Nil fields are left unchanged; a field
// can be overwritten but never cleared.
type Patch struct {
	Date              *core.Date
	Amount            *decimal.Decimal
	Description       *string
	Category          *string
	BankAccount       *string
	Type              *core.EntryType
	ImportedFrom      *core.ImportSource
	LinkedBankEntryID *string
}

// ImportResult reports one import batch. Imported always contains every
// enriched entry, including credit card duplicates that were not persisted.
type ImportResult struct {
	Imported           []core.LedgerEntry `json:"imported"`
	DuplicatesDetected int                `json:"duplicatesDetected"`
}

// NewService wires the store with a fresh category advisor. The events
// client is optional; a nil client disables event publishing.
func NewService(store storage.EntryStore, events *amqp.Client) *Service {
	return &Service{
		store:   store,
		advisor: advisor.New(),
		events:  events,
	}
}

// List returns all entries sorted ascending by date. Entries sharing a date
// keep their original relative order.
func (s *Service) List(ctx context.Context) ([]core.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
	return entries, nil
}

// Get returns the entry with the given id, if any.
func (s *Service) Get(ctx context.Context, id string) (core.LedgerEntry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Get(ctx, id)
}

// Add assigns a fresh id, resolves the category through the advisor (the
// caller-supplied category doubles as the fallback) and appends the entry.
// The final category is learned for the entry's wording.
func (s *Service) Add(ctx context.Context, e core.LedgerEntry) (core.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = uuid.NewString()
	e.Category = s.advisor.Suggest(e.Description, e.Category)

	if err := s.store.Append(ctx, e); err != nil {
		return core.LedgerEntry{}, fmt.Errorf("add entry: %w", err)
	}
	s.advisor.Learn(e.Description, e.Category)
	s.publishEvent(ctx, amqp.ActionCreated, e.ID, "")

	return e, nil
}

// Update shallow-merges the patch over the stored entry. The boolean is
// false when no entry has the given id; that is not an error, the caller
// decides how to surface it.
func (s *Service) Update(ctx context.Context, id string, p Patch) (core.LedgerEntry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok, err := s.store.Get(ctx, id)
	if err != nil {
		return core.LedgerEntry{}, false, fmt.Errorf("find entry: %w", err)
	}
	if !ok {
		return core.LedgerEntry{}, false, nil
	}

	p.apply(&e)

	if _, err := s.store.Replace(ctx, e); err != nil {
		return core.LedgerEntry{}, false, fmt.Errorf("update entry: %w", err)
	}
	s.advisor.Learn(e.Description, e.Category)
	s.publishEvent(ctx, amqp.ActionUpdated, e.ID, "")

	return e, true, nil
}

// Delete removes the entry and reports whether it existed. Entries that
// reference the deleted id via LinkedBankEntryID are left untouched; the
// dangling reference is accepted behavior.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.store.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete entry: %w", err)
	}
	if removed {
		s.publishEvent(ctx, amqp.ActionDeleted, id, "")
	}
	return removed, nil
}

// Import enriches each raw entry with a fresh id, the import source and a
// suggested category. Credit card entries are checked against the store
// state captured before the batch: a duplicate gets its LinkedBankEntryID
// set and is reported but not persisted. Document sources (pdf, xlsx, ods)
// are never deduplicated.
func (s *Service) Import(ctx context.Context, source core.ImportSource, rawEntries []core.LedgerEntry) (ImportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Duplicate checks run against the persisted state as of the start of
	// the batch, so entries imported earlier in the same batch never match.
	snapshot, err := s.store.All(ctx)
	if err != nil {
		return ImportResult{}, fmt.Errorf("snapshot entries: %w", err)
	}

	result := ImportResult{Imported: make([]core.LedgerEntry, 0, len(rawEntries))}
	for _, raw := range rawEntries {
		enriched := raw
		enriched.ID = uuid.NewString()
		enriched.ImportedFrom = source
		enriched.Category = s.advisor.Suggest(raw.Description, raw.Category)
		enriched.LinkedBankEntryID = ""

		persist := true
		if source == core.SourceCreditCard {
			if dup := match.FindDuplicate(snapshot, enriched); dup != nil {
				enriched.LinkedBankEntryID = dup.ID
				result.DuplicatesDetected++
				persist = false
			}
		}

		if persist {
			if err := s.store.Append(ctx, enriched); err != nil {
				return ImportResult{}, fmt.Errorf("append imported entry: %w", err)
			}
		}
		result.Imported = append(result.Imported, enriched)
	}

	s.publishEvent(ctx, amqp.ActionImported, "", string(source))
	slog.InfoContext(ctx, "Import batch processed",
		"source", source,
		"received", len(rawEntries),
		"duplicates", result.DuplicatesDetected)

	return result, nil
}

func (s *Service) publishEvent(ctx context.Context, action, entryID, source string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishLedgerEvent(ctx, action, entryID, source); err != nil {
		// The mutation already succeeded locally; never fail it on publish.
		slog.ErrorContext(ctx, "Failed to publish ledger event",
			"action", action, "entry_id", entryID, "error", err)
	}
}

func (p Patch) apply(e *core.LedgerEntry) {
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.BankAccount != nil {
		e.BankAccount = *p.BankAccount
	}
	if p.Type != nil {
		e.Type = *p.Type
	}
	if p.ImportedFrom != nil {
		e.ImportedFrom = *p.ImportedFrom
	}
	if p.LinkedBankEntryID != nil {
		e.LinkedBankEntryID = *p.LinkedBankEntryID
	}
}
