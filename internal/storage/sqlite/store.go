// Package sqlite is the file-backed EntryStore backend. It mirrors the
// memory backend's semantics: the seq column preserves insertion order and
// amounts are stored as decimal strings, never floats.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"appecon/internal/core"
	"appecon/internal/storage"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

const entryColumns = "id, entry_date, amount, description, category, bank_account, entry_type, imported_from, linked_bank_entry_id"

func (s *Store) Append(ctx context.Context, e core.LedgerEntry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO ledger_entries (`+entryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Date.String(), e.Amount.String(), e.Description, e.Category,
		e.BankAccount, string(e.Type), string(e.ImportedFrom), e.LinkedBankEntryID)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

func (s *Store) All(ctx context.Context) ([]core.LedgerEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM ledger_entries ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("select ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []core.LedgerEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger entries: %w", err)
	}
	return entries, nil
}

func (s *Store) Get(ctx context.Context, id string) (core.LedgerEntry, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM ledger_entries WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.LedgerEntry{}, false, nil
	}
	if err != nil {
		return core.LedgerEntry{}, false, err
	}
	return e, true, nil
}

func (s *Store) Replace(ctx context.Context, e core.LedgerEntry) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE ledger_entries
		 SET entry_date = ?, amount = ?, description = ?, category = ?,
		     bank_account = ?, entry_type = ?, imported_from = ?, linked_bank_entry_id = ?
		 WHERE id = ?`,
		e.Date.String(), e.Amount.String(), e.Description, e.Category,
		e.BankAccount, string(e.Type), string(e.ImportedFrom), e.LinkedBankEntryID, e.ID)
	if err != nil {
		return false, fmt.Errorf("update ledger entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM ledger_entries WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete ledger entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (core.LedgerEntry, error) {
	var (
		e            core.LedgerEntry
		date, amount string
		typ, source  string
	)
	err := row.Scan(&e.ID, &date, &amount, &e.Description, &e.Category,
		&e.BankAccount, &typ, &source, &e.LinkedBankEntryID)
	if err != nil {
		return core.LedgerEntry{}, err
	}

	e.Date, err = core.ParseDate(date)
	if err != nil {
		return core.LedgerEntry{}, fmt.Errorf("stored date %q: %w", date, err)
	}
	e.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return core.LedgerEntry{}, fmt.Errorf("stored amount %q: %w", amount, err)
	}
	e.Type = core.EntryType(typ)
	e.ImportedFrom = core.ImportSource(source)
	return e, nil
}

var _ storage.EntryStore = (*Store)(nil)
