package match

import (
	"github.com/shopspring/decimal"

	"appecon/internal/core"
)

// Matching thresholds for probable duplicates.
var amountTolerance = decimal.New(5, -2) // 0.05, currency-agnostic

const (
	maxDayGap     = 4
	minSimilarity = 0.55
)

// FindDuplicate scans entries in insertion order and returns the first one
// that is a probable duplicate of the candidate, or nil when none is.
//
// Only expense, fee and tax entries are eligible; revenue and transfer
// entries never match. A match requires the amounts to differ by less than
// 0.05, the dates by at most 4 calendar days, and the descriptions to score
// at least 0.55 similarity. First match wins; there is no best-match ranking.
func FindDuplicate(entries []core.LedgerEntry, candidate core.LedgerEntry) *core.LedgerEntry {
	for i := range entries {
		existing := &entries[i]
		if !eligible(existing.Type) {
			continue
		}
		if existing.Amount.Sub(candidate.Amount).Abs().GreaterThanOrEqual(amountTolerance) {
			continue
		}
		if existing.Date.DaysApart(candidate.Date) > maxDayGap {
			continue
		}
		if Similarity(existing.Description, candidate.Description) < minSimilarity {
			continue
		}
		return existing
	}
	return nil
}

func eligible(t core.EntryType) bool {
	return t == core.Expense || t == core.Fee || t == core.Tax
}
