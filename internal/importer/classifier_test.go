package importer

import (
	"testing"

	"github.com/shopspring/decimal"

	"appecon/internal/core"
)

func TestClassifyEntryType(t *testing.T) {
	cases := []struct {
		description string
		want        core.EntryType
	}{
		{"Payment received from ACME", core.Revenue},
		{"BANK TRANSFER RECEIVED ref 123", core.Revenue},
		{"Invoice paid by customer", core.Revenue},
		{"Internal transfer to savings", core.Transfer},
		{"monthly account transfer", core.Transfer},
		{"Office rent January", core.Expense},
		{"", core.Expense},
	}
	for _, tc := range cases {
		if got := ClassifyEntryType(tc.description); got != tc.want {
			t.Errorf("ClassifyEntryType(%q) = %s, want %s", tc.description, got, tc.want)
		}
	}
}

func TestToLedgerEntryNormalizesAmount(t *testing.T) {
	line := RawDocumentLine{
		Date:        core.NewDate(2024, 1, 10),
		Amount:      decimal.NewFromFloat(-120.50),
		Description: "Office rent January",
	}

	e := ToLedgerEntry(line, "main")
	if e.Amount.IsNegative() {
		t.Fatalf("amount must be a magnitude, got %s", e.Amount)
	}
	if !e.Amount.Equal(decimal.NewFromFloat(120.50)) {
		t.Fatalf("amount = %s", e.Amount)
	}
	if e.Category != DefaultCategory {
		t.Fatalf("category = %q", e.Category)
	}
	if e.ID != "" || e.LinkedBankEntryID != "" {
		t.Fatal("candidate entries carry no id and no link")
	}
}

func TestToLedgerEntryAccountHint(t *testing.T) {
	line := RawDocumentLine{
		Date:        core.NewDate(2024, 1, 10),
		Amount:      decimal.NewFromInt(10),
		Description: "Parking",
		AccountHint: "petty-cash",
	}
	if e := ToLedgerEntry(line, "main"); e.BankAccount != "petty-cash" {
		t.Fatalf("hint should win, got %q", e.BankAccount)
	}

	line.AccountHint = ""
	if e := ToLedgerEntry(line, "main"); e.BankAccount != "main" {
		t.Fatalf("expected default account, got %q", e.BankAccount)
	}
}
