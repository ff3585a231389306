// Package importer turns raw document lines (PDF/XLSX/ODS extractions) into
// candidate ledger entries for the ledger service's Import operation.
package importer

import (
	"strings"

	"github.com/shopspring/decimal"

	"appecon/internal/core"
)

// DefaultCategory is the placeholder assigned to classified lines; the
// ledger's category advisor may replace it on import.
const DefaultCategory = "uncategorized"

var (
	revenueKeywords  = []string{"payment received", "bank transfer received", "invoice paid"}
	transferKeywords = []string{"internal transfer", "account transfer"}
)

// RawDocumentLine is one parsed statement line. Amount may be negative; the
// sign is dropped during conversion since entry amounts are magnitudes.
type RawDocumentLine struct {
	Date        core.Date
	Amount      decimal.Decimal
	Description string
	AccountHint string
}

// ClassifyEntryType derives the entry type from the line description:
// revenue-indicating phrases win, then transfer-indicating ones, everything
// else is an expense.
func ClassifyEntryType(description string) core.EntryType {
	text := strings.ToLower(description)
	for _, keyword := range revenueKeywords {
		if strings.Contains(text, keyword) {
			return core.Revenue
		}
	}
	for _, keyword := range transferKeywords {
		if strings.Contains(text, keyword) {
			return core.Transfer
		}
	}
	return core.Expense
}

// ToLedgerEntry builds a candidate entry from a document line. The entry has
// no ID and no link; both are assigned by the ledger service on import.
func ToLedgerEntry(line RawDocumentLine, defaultBankAccount string) core.LedgerEntry {
	account := line.AccountHint
	if account == "" {
		account = defaultBankAccount
	}
	return core.LedgerEntry{
		Date:        line.Date,
		Amount:      line.Amount.Abs(),
		Description: line.Description,
		Category:    DefaultCategory,
		BankAccount: account,
		Type:        ClassifyEntryType(line.Description),
	}
}
