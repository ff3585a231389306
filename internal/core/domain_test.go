package core

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func validEntry() LedgerEntry {
	return LedgerEntry{
		Date:        NewDate(2024, 1, 10),
		Amount:      decimal.NewFromFloat(100.00),
		Description: "Office Rent",
		Category:    "facilities",
		BankAccount: "main",
		Type:        Expense,
	}
}

func TestLedgerEntryValidate(t *testing.T) {
	if err := validEntry().Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*LedgerEntry)
		want   error
	}{
		{"zero date", func(e *LedgerEntry) { e.Date = Date{} }, ErrInvalidDate},
		{"negative amount", func(e *LedgerEntry) { e.Amount = decimal.NewFromFloat(-1) }, ErrNegativeAmount},
		{"empty description", func(e *LedgerEntry) { e.Description = "  " }, ErrEmptyDescription},
		{"empty category", func(e *LedgerEntry) { e.Category = "" }, ErrEmptyCategory},
		{"empty account", func(e *LedgerEntry) { e.BankAccount = "" }, ErrEmptyBankAccount},
		{"bad type", func(e *LedgerEntry) { e.Type = "dividend" }, ErrInvalidType},
		{"bad source", func(e *LedgerEntry) { e.ImportedFrom = "csv" }, ErrInvalidSource},
	}
	for _, tc := range cases {
		e := validEntry()
		tc.mutate(&e)
		if err := e.Validate(); err != tc.want {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestZeroAmountIsValid(t *testing.T) {
	e := validEntry()
	e.Amount = decimal.Zero
	if err := e.Validate(); err != nil {
		t.Fatalf("zero magnitude should validate, got %v", err)
	}
}

func TestEntryTypeSets(t *testing.T) {
	operating := []EntryType{Expense, Tax, Fee, Royalty}
	for _, typ := range operating {
		if !typ.OperatingExpense() {
			t.Errorf("%s should be an operating expense type", typ)
		}
	}
	for _, typ := range []EntryType{Revenue, Transfer} {
		if typ.OperatingExpense() {
			t.Errorf("%s should not be an operating expense type", typ)
		}
	}
}

func TestDateParseAndFormat(t *testing.T) {
	d, err := ParseDate("2024-01-10")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.String() != "2024-01-10" {
		t.Fatalf("round trip mismatch: %s", d)
	}
	if _, err := ParseDate("10/01/2024"); err == nil {
		t.Fatal("expected error for non-ISO format")
	}
}

func TestDateDaysApart(t *testing.T) {
	a := NewDate(2024, 1, 10)
	b := NewDate(2024, 1, 14)
	if got := a.DaysApart(b); got != 4 {
		t.Fatalf("expected 4 days, got %d", got)
	}
	if got := b.DaysApart(a); got != 4 {
		t.Fatalf("expected symmetry, got %d", got)
	}
	if got := a.DaysApart(a); got != 0 {
		t.Fatalf("expected 0 days, got %d", got)
	}
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2024, 2, 29)
	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `"2024-02-29"` {
		t.Fatalf("unexpected JSON: %s", raw)
	}
	var back Date
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Fatalf("round trip mismatch: %s", back)
	}
}
