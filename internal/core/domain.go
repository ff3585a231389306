package core

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	Revenue  EntryType = "revenue"
	Expense  EntryType = "expense"
	Transfer EntryType = "transfer"
	Tax      EntryType = "tax"
	Fee      EntryType = "fee"
	Royalty  EntryType = "royalty"
)

const (
	SourcePDF        ImportSource = "pdf"
	SourceXLSX       ImportSource = "xlsx"
	SourceODS        ImportSource = "ods"
	SourceManual     ImportSource = "manual"
	SourceCreditCard ImportSource = "credit_card"
)

type (
	EntryType    string
	ImportSource string

	// LedgerEntry is a single financial movement. The ID is assigned once at
	// creation and never changes; Amount is always a non-negative magnitude,
	// the sign is derived from Type on read.
	LedgerEntry struct {
		ID                string          `json:"id"`
		Date              Date            `json:"date"`
		Amount            decimal.Decimal `json:"amount"`
		Description       string          `json:"description"`
		Category          string          `json:"category"`
		BankAccount       string          `json:"bankAccount"`
		Type              EntryType       `json:"type"`
		ImportedFrom      ImportSource    `json:"importedFrom,omitempty"`
		LinkedBankEntryID string          `json:"linkedBankEntryId,omitempty"`
	}
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrNegativeAmount   = errors.New("amount must be a non-negative magnitude")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
	ErrEmptyBankAccount = errors.New("empty bank account")
	ErrInvalidType      = errors.New("invalid entry type")
	ErrInvalidSource    = errors.New("invalid import source")
)

func (t EntryType) Valid() bool {
	switch t {
	case Revenue, Expense, Transfer, Tax, Fee, Royalty:
		return true
	}
	return false
}

// OperatingExpense reports whether the type belongs to the operating expense
// set used by executive metrics, insight rankings and risk detection.
func (t EntryType) OperatingExpense() bool {
	switch t {
	case Expense, Tax, Fee, Royalty:
		return true
	}
	return false
}

func (s ImportSource) Valid() bool {
	switch s {
	case SourcePDF, SourceXLSX, SourceODS, SourceManual, SourceCreditCard:
		return true
	}
	return false
}

func (e LedgerEntry) Validate() error {
	if e.Date.IsZero() {
		return ErrInvalidDate
	}
	if e.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(strings.TrimSpace(e.Category)) == 0 {
		return ErrEmptyCategory
	}
	if len(strings.TrimSpace(e.BankAccount)) == 0 {
		return ErrEmptyBankAccount
	}
	if !e.Type.Valid() {
		return ErrInvalidType
	}
	if e.ImportedFrom != "" && !e.ImportedFrom.Valid() {
		return ErrInvalidSource
	}
	return nil
}
