package http

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"appecon/internal/core"
	"appecon/internal/ledger"
)

// entryPayload is the wire shape for creating entries and for import items.
type entryPayload struct {
	Date         string          `json:"date"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	BankAccount  string          `json:"bankAccount"`
	Type         string          `json:"type"`
	ImportedFrom string          `json:"importedFrom,omitempty"`
}

// entryPatchPayload is the wire shape for partial updates. Absent fields
// stay nil and leave the stored value unchanged.
type entryPatchPayload struct {
	Date              *string          `json:"date"`
	Amount            *decimal.Decimal `json:"amount"`
	Description       *string          `json:"description"`
	Category          *string          `json:"category"`
	BankAccount       *string          `json:"bankAccount"`
	Type              *string          `json:"type"`
	ImportedFrom      *string          `json:"importedFrom"`
	LinkedBankEntryID *string          `json:"linkedBankEntryId"`
}

type importPayload struct {
	Source  string         `json:"source"`
	Entries []entryPayload `json:"entries"`
}

// toEntry validates the payload and converts it to a domain entry. All
// problems are reported at once.
func (p entryPayload) toEntry() (core.LedgerEntry, error) {
	var problems []string

	date, err := core.ParseDate(p.Date)
	if err != nil {
		problems = append(problems, fmt.Sprintf("invalid date '%s': expected YYYY-MM-DD", p.Date))
	}
	if !p.Amount.IsPositive() {
		problems = append(problems, "amount must be positive")
	}
	if len(strings.TrimSpace(p.Description)) < 2 {
		problems = append(problems, "description must have at least 2 characters")
	}
	if len(strings.TrimSpace(p.Category)) < 2 {
		problems = append(problems, "category must have at least 2 characters")
	}
	if len(strings.TrimSpace(p.BankAccount)) < 2 {
		problems = append(problems, "bankAccount must have at least 2 characters")
	}

	typ := core.EntryType(p.Type)
	if !typ.Valid() {
		problems = append(problems, fmt.Sprintf("invalid type '%s'", p.Type))
	}
	source := core.ImportSource(p.ImportedFrom)
	if p.ImportedFrom != "" && !source.Valid() {
		problems = append(problems, fmt.Sprintf("invalid importedFrom '%s'", p.ImportedFrom))
	}

	if len(problems) > 0 {
		return core.LedgerEntry{}, fmt.Errorf("%s", strings.Join(problems, "; "))
	}

	return core.LedgerEntry{
		Date:         date,
		Amount:       p.Amount,
		Description:  strings.TrimSpace(p.Description),
		Category:     strings.TrimSpace(p.Category),
		BankAccount:  strings.TrimSpace(p.BankAccount),
		Type:         typ,
		ImportedFrom: source,
	}, nil
}

func (p entryPatchPayload) toPatch() (ledger.Patch, error) {
	var (
		patch    ledger.Patch
		problems []string
	)

	if p.Date != nil {
		date, err := core.ParseDate(*p.Date)
		if err != nil {
			problems = append(problems, fmt.Sprintf("invalid date '%s': expected YYYY-MM-DD", *p.Date))
		} else {
			patch.Date = &date
		}
	}
	if p.Amount != nil {
		if !p.Amount.IsPositive() {
			problems = append(problems, "amount must be positive")
		} else {
			patch.Amount = p.Amount
		}
	}
	if p.Description != nil {
		desc := strings.TrimSpace(*p.Description)
		if len(desc) < 2 {
			problems = append(problems, "description must have at least 2 characters")
		} else {
			patch.Description = &desc
		}
	}
	if p.Category != nil {
		category := strings.TrimSpace(*p.Category)
		if len(category) < 2 {
			problems = append(problems, "category must have at least 2 characters")
		} else {
			patch.Category = &category
		}
	}
	if p.BankAccount != nil {
		account := strings.TrimSpace(*p.BankAccount)
		if len(account) < 2 {
			problems = append(problems, "bankAccount must have at least 2 characters")
		} else {
			patch.BankAccount = &account
		}
	}
	if p.Type != nil {
		typ := core.EntryType(*p.Type)
		if !typ.Valid() {
			problems = append(problems, fmt.Sprintf("invalid type '%s'", *p.Type))
		} else {
			patch.Type = &typ
		}
	}
	if p.ImportedFrom != nil {
		source := core.ImportSource(*p.ImportedFrom)
		if !source.Valid() {
			problems = append(problems, fmt.Sprintf("invalid importedFrom '%s'", *p.ImportedFrom))
		} else {
			patch.ImportedFrom = &source
		}
	}
	if p.LinkedBankEntryID != nil {
		patch.LinkedBankEntryID = p.LinkedBankEntryID
	}

	if len(problems) > 0 {
		return ledger.Patch{}, fmt.Errorf("%s", strings.Join(problems, "; "))
	}
	return patch, nil
}

// toImport validates the batch and returns the source plus candidate
// entries. Manual is not an import source; only documents and credit card
// feeds arrive through this endpoint.
func (p importPayload) toImport() (core.ImportSource, []core.LedgerEntry, error) {
	source := core.ImportSource(p.Source)
	switch source {
	case core.SourcePDF, core.SourceXLSX, core.SourceODS, core.SourceCreditCard:
	default:
		return "", nil, fmt.Errorf("invalid source '%s'", p.Source)
	}

	entries := make([]core.LedgerEntry, 0, len(p.Entries))
	for i, item := range p.Entries {
		item.ImportedFrom = "" // assigned by the ledger service from source
		entry, err := item.toEntry()
		if err != nil {
			return "", nil, fmt.Errorf("entry %d: %w", i, err)
		}
		entries = append(entries, entry)
	}
	return source, entries, nil
}
