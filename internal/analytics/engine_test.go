package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"appecon/internal/core"
	"appecon/internal/storage/memory"
)

func seed(t *testing.T, entries ...core.LedgerEntry) *Engine {
	t.Helper()
	store := memory.New()
	for _, e := range entries {
		if err := store.Append(context.Background(), e); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return NewEngine(store)
}

func entry(typ core.EntryType, amount float64, account, category, date string) core.LedgerEntry {
	d, _ := core.ParseDate(date)
	return core.LedgerEntry{
		ID:          category + "-" + date,
		Date:        d,
		Amount:      decimal.NewFromFloat(amount),
		Description: category,
		Category:    category,
		BankAccount: account,
		Type:        typ,
	}
}

func TestOperatingCashflow(t *testing.T) {
	e := seed(t,
		entry(core.Revenue, 1000, "main", "sales", "2024-01-05"),
		entry(core.Transfer, 500, "main", "internal", "2024-01-06"),
		entry(core.Expense, 400, "main", "rent", "2024-01-07"),
		entry(core.Tax, 100, "main", "vat", "2024-01-08"),
	)

	flow, err := e.OperatingCashflow(context.Background())
	if err != nil {
		t.Fatalf("cashflow: %v", err)
	}
	// Only revenue and expense survive, in store order.
	if len(flow) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(flow))
	}
	if !flow[0].SignedAmount.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("revenue should stay positive, got %s", flow[0].SignedAmount)
	}
	if !flow[1].SignedAmount.Equal(decimal.NewFromInt(-400)) {
		t.Errorf("expense should be negated, got %s", flow[1].SignedAmount)
	}
}

func TestCashflowByAccount(t *testing.T) {
	e := seed(t,
		entry(core.Expense, 100, "ops", "rent", "2024-01-01"),
		entry(core.Revenue, 900, "sales", "invoices", "2024-01-02"),
		entry(core.Transfer, 400, "sales", "internal", "2024-01-03"),
		entry(core.Fee, 50, "ops", "bank", "2024-01-04"),
		entry(core.Revenue, 100, "ops", "refund", "2024-01-05"),
	)

	groups, err := e.CashflowByAccount(context.Background())
	if err != nil {
		t.Fatalf("cashflow by account: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(groups))
	}
	// First-occurrence order: ops before sales.
	if groups[0].Account != "ops" || groups[1].Account != "sales" {
		t.Fatalf("unexpected group order: %+v", groups)
	}
	ops := groups[0]
	if !ops.TotalIn.Equal(decimal.NewFromInt(100)) ||
		!ops.TotalOut.Equal(decimal.NewFromInt(150)) ||
		!ops.Net.Equal(decimal.NewFromInt(-50)) {
		t.Fatalf("unexpected ops totals: %+v", ops)
	}
	sales := groups[1]
	if !sales.TotalIn.Equal(decimal.NewFromInt(900)) || !sales.TotalOut.IsZero() {
		t.Fatalf("transfer must be excluded entirely: %+v", sales)
	}
}

func TestExecutiveMetrics(t *testing.T) {
	e := seed(t,
		entry(core.Revenue, 1000, "main", "sales", "2024-01-05"),
		entry(core.Expense, 400, "main", "rent", "2024-01-06"),
		entry(core.Tax, 100, "main", "vat", "2024-01-07"),
	)

	m, err := e.ExecutiveMetrics(context.Background())
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	if !m.Revenue.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("revenue = %s", m.Revenue)
	}
	if !m.TotalExpenses.Equal(decimal.NewFromInt(500)) {
		t.Errorf("totalExpenses = %s (tax must be included)", m.TotalExpenses)
	}
	if !m.Taxes.Equal(decimal.NewFromInt(100)) {
		t.Errorf("taxes = %s", m.Taxes)
	}
	if !m.NetProfit.Equal(decimal.NewFromInt(500)) {
		t.Errorf("netProfit = %s", m.NetProfit)
	}
	if !m.ContributionMargin.Equal(decimal.NewFromInt(50)) {
		t.Errorf("contributionMargin = %s, want 50", m.ContributionMargin)
	}
}

func TestExecutiveMetricsZeroRevenue(t *testing.T) {
	e := seed(t, entry(core.Expense, 400, "main", "rent", "2024-01-06"))

	m, err := e.ExecutiveMetrics(context.Background())
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	if !m.ContributionMargin.IsZero() {
		t.Fatalf("margin must be 0 without revenue, got %s", m.ContributionMargin)
	}
	if !m.NetProfit.Equal(decimal.NewFromInt(-400)) {
		t.Fatalf("netProfit = %s", m.NetProfit)
	}
}

func TestInsightsEmptyStore(t *testing.T) {
	e := seed(t)

	report, err := e.Insights(context.Background())
	if err != nil {
		t.Fatalf("insights: %v", err)
	}
	if len(report.TopCostCenters) != 0 || len(report.Opportunities) != 0 {
		t.Fatalf("expected empty rankings: %+v", report)
	}
	if report.Summary != "No sufficient data available yet for automated recommendations." {
		t.Fatalf("unexpected summary: %q", report.Summary)
	}
	if len(report.Risks) != 1 {
		t.Fatalf("expected exactly one risk message, got %d", len(report.Risks))
	}
}

func TestInsightsRankingAndMessages(t *testing.T) {
	e := seed(t,
		entry(core.Expense, 500, "main", "rent", "2024-01-01"),
		entry(core.Expense, 300, "main", "software", "2024-01-02"),
		entry(core.Fee, 120, "main", "banking", "2024-01-03"),
		entry(core.Royalty, 80, "main", "licensing", "2024-01-04"),
		entry(core.Revenue, 2000, "main", "sales", "2024-01-05"), // ignored by ranking
	)

	report, err := e.Insights(context.Background())
	if err != nil {
		t.Fatalf("insights: %v", err)
	}
	if len(report.TopCostCenters) != 3 {
		t.Fatalf("expected top 3, got %d", len(report.TopCostCenters))
	}
	top := report.TopCostCenters[0]
	if top.Category != "rent" || !top.Amount.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("unexpected top cost center: %+v", top)
	}
	// 500 of 1000 operating expenses.
	if !top.Percentage.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("percentage = %s, want 50", top.Percentage)
	}

	// rent (50%) and software (30%) exceed the 25% threshold, banking (12%)
	// gets the monitoring message.
	if want := "rent represents 50% of expenses. Review contracts and consumption targets."; report.Opportunities[0] != want {
		t.Errorf("opportunity[0] = %q", report.Opportunities[0])
	}
	if want := "Monitor banking (USD-equivalent 120.00) to keep spending stable."; report.Opportunities[2] != want {
		t.Errorf("opportunity[2] = %q", report.Opportunities[2])
	}

	if report.Summary != "Current top cost centers: rent, software, banking." {
		t.Fatalf("unexpected summary: %q", report.Summary)
	}
}

func fixedNow(date string) func() time.Time {
	d, _ := core.ParseDate(date)
	return func() time.Time { return d.Time }
}

func TestRiskSignalsRules(t *testing.T) {
	cases := []struct {
		name    string
		entries []core.LedgerEntry
		want    string
	}{
		{
			name: "no revenue with expenses",
			entries: []core.LedgerEntry{
				entry(core.Expense, 100, "main", "rent", "2024-05-20"),
			},
			want: "No revenue in the recent period: critical cash risk.",
		},
		{
			name: "expenses exceed revenue",
			entries: []core.LedgerEntry{
				entry(core.Revenue, 100, "main", "sales", "2024-05-20"),
				entry(core.Expense, 200, "main", "rent", "2024-05-21"),
			},
			want: "Expenses exceeded revenue in the last 60 days: review cost structure.",
		},
		{
			name: "margin at risk",
			entries: []core.LedgerEntry{
				entry(core.Revenue, 1000, "main", "sales", "2024-05-20"),
				entry(core.Expense, 900, "main", "rent", "2024-05-21"),
			},
			want: "Expenses are above 85% of revenue: margin at risk.",
		},
		{
			name: "controlled",
			entries: []core.LedgerEntry{
				entry(core.Revenue, 1000, "main", "sales", "2024-05-20"),
				entry(core.Expense, 500, "main", "rent", "2024-05-21"),
			},
			want: "Financial risk is currently controlled for the analyzed period.",
		},
		{
			name:    "empty store is controlled",
			entries: nil,
			want:    "Financial risk is currently controlled for the analyzed period.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := seed(t, tc.entries...)
			e.now = fixedNow("2024-06-01")

			risks, err := e.RiskSignals(context.Background())
			if err != nil {
				t.Fatalf("risk signals: %v", err)
			}
			if len(risks) != 1 {
				t.Fatalf("expected exactly one message, got %d", len(risks))
			}
			if risks[0] != tc.want {
				t.Fatalf("got %q, want %q", risks[0], tc.want)
			}
		})
	}
}

func TestRiskSignalsWindow(t *testing.T) {
	// The window covers the trailing 60 calendar days regardless of the time
	// of day: an entry on the cutoff day itself still counts, older entries
	// are ignored.
	noon := func() time.Time {
		return time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)
	}

	e := seed(t,
		entry(core.Expense, 100, "main", "rent", "2024-04-02"), // exactly 60 days back
	)
	e.now = noon

	risks, err := e.RiskSignals(context.Background())
	if err != nil {
		t.Fatalf("risk signals: %v", err)
	}
	if risks[0] != "No revenue in the recent period: critical cash risk." {
		t.Fatalf("cutoff-day entry excluded from the window: %q", risks[0])
	}

	e = seed(t,
		entry(core.Expense, 900, "main", "rent", "2024-01-01"), // stale
		entry(core.Revenue, 1000, "main", "sales", "2024-05-20"),
		entry(core.Expense, 100, "main", "rent", "2024-04-02"),
	)
	e.now = noon

	risks, err = e.RiskSignals(context.Background())
	if err != nil {
		t.Fatalf("risk signals: %v", err)
	}
	if risks[0] != "Financial risk is currently controlled for the analyzed period." {
		t.Fatalf("stale entries leaked into the window: %q", risks[0])
	}
}
