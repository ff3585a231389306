// Package analytics derives cashflow views, executive metrics and heuristic
// insights from the current ledger contents. Every report is computed on
// demand from a store scan; nothing is cached or persisted.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"appecon/internal/core"
	"appecon/internal/storage"
)

const (
	riskWindowDays = 60
	topCostCenters = 3
)

// marginAlert is the expense/revenue ratio above which margins are flagged.
var marginAlert = decimal.New(85, -2)

// costCenterReviewPct is the share of expenses above which a cost center
// gets a contract-review opportunity instead of a monitoring one.
var costCenterReviewPct = decimal.NewFromInt(25)

type Engine struct {
	store storage.EntryStore
	now   func() time.Time
}

func NewEngine(store storage.EntryStore) *Engine {
	return &Engine{store: store, now: time.Now}
}

// SignedEntry annotates an entry with its cashflow direction: revenue
// amounts stay positive, expense amounts are negated.
type SignedEntry struct {
	core.LedgerEntry
	SignedAmount decimal.Decimal `json:"signedAmount"`
}

// AccountCashflow aggregates non-transfer movements per bank account.
type AccountCashflow struct {
	Account  string          `json:"account"`
	TotalIn  decimal.Decimal `json:"totalIn"`
	TotalOut decimal.Decimal `json:"totalOut"`
	Net      decimal.Decimal `json:"net"`
}

// ExecutiveMetrics is the dashboard summary. Taxes count both in
// TotalExpenses and in the separate Taxes total.
type ExecutiveMetrics struct {
	Revenue            decimal.Decimal `json:"revenue"`
	TotalExpenses      decimal.Decimal `json:"totalExpenses"`
	Taxes              decimal.Decimal `json:"taxes"`
	ContributionMargin decimal.Decimal `json:"contributionMargin"`
	NetProfit          decimal.Decimal `json:"netProfit"`
}

// CostCenter is one category's share of operating expenses.
type CostCenter struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
}

// Insights is the heuristic recommendation report.
type Insights struct {
	TopCostCenters []CostCenter `json:"topCostCenters"`
	Opportunities  []string     `json:"opportunities"`
	Risks          []string     `json:"risks"`
	Summary        string       `json:"summary"`
}

// OperatingCashflow returns revenue and expense entries in store iteration
// order, each annotated with a signed amount.
func (e *Engine) OperatingCashflow(ctx context.Context) ([]SignedEntry, error) {
	entries, err := e.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan entries: %w", err)
	}

	flow := make([]SignedEntry, 0, len(entries))
	for _, entry := range entries {
		switch entry.Type {
		case core.Revenue:
			flow = append(flow, SignedEntry{LedgerEntry: entry, SignedAmount: entry.Amount})
		case core.Expense:
			flow = append(flow, SignedEntry{LedgerEntry: entry, SignedAmount: entry.Amount.Neg()})
		}
	}
	return flow, nil
}

// CashflowByAccount groups entries by bank account, skipping transfers.
// Groups are emitted in first-occurrence order of each account.
func (e *Engine) CashflowByAccount(ctx context.Context) ([]AccountCashflow, error) {
	entries, err := e.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan entries: %w", err)
	}

	index := make(map[string]int)
	groups := make([]AccountCashflow, 0)
	for _, entry := range entries {
		if entry.Type == core.Transfer {
			continue
		}
		i, ok := index[entry.BankAccount]
		if !ok {
			i = len(groups)
			index[entry.BankAccount] = i
			groups = append(groups, AccountCashflow{
				Account:  entry.BankAccount,
				TotalIn:  decimal.Zero,
				TotalOut: decimal.Zero,
				Net:      decimal.Zero,
			})
		}
		if entry.Type == core.Revenue {
			groups[i].TotalIn = groups[i].TotalIn.Add(entry.Amount)
		} else {
			groups[i].TotalOut = groups[i].TotalOut.Add(entry.Amount)
		}
		groups[i].Net = groups[i].TotalIn.Sub(groups[i].TotalOut)
	}
	return groups, nil
}

// ExecutiveMetrics sums revenue, operating expenses and taxes over the whole
// store. The contribution margin is a percentage rounded to two decimals,
// zero when there is no revenue.
func (e *Engine) ExecutiveMetrics(ctx context.Context) (ExecutiveMetrics, error) {
	entries, err := e.store.All(ctx)
	if err != nil {
		return ExecutiveMetrics{}, fmt.Errorf("scan entries: %w", err)
	}

	m := ExecutiveMetrics{
		Revenue:            decimal.Zero,
		TotalExpenses:      decimal.Zero,
		Taxes:              decimal.Zero,
		ContributionMargin: decimal.Zero,
	}
	for _, entry := range entries {
		if entry.Type == core.Revenue {
			m.Revenue = m.Revenue.Add(entry.Amount)
		}
		if entry.Type.OperatingExpense() {
			m.TotalExpenses = m.TotalExpenses.Add(entry.Amount)
		}
		if entry.Type == core.Tax {
			m.Taxes = m.Taxes.Add(entry.Amount)
		}
	}

	m.NetProfit = m.Revenue.Sub(m.TotalExpenses)
	if !m.Revenue.IsZero() {
		m.ContributionMargin = m.NetProfit.
			Div(m.Revenue).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}
	return m, nil
}

// Insights ranks operating expense categories, derives one opportunity
// message per top cost center and attaches the current risk signals.
func (e *Engine) Insights(ctx context.Context) (Insights, error) {
	entries, err := e.store.All(ctx)
	if err != nil {
		return Insights{}, fmt.Errorf("scan entries: %w", err)
	}

	total := decimal.Zero
	index := make(map[string]int)
	centers := make([]CostCenter, 0)
	for _, entry := range entries {
		if !entry.Type.OperatingExpense() {
			continue
		}
		total = total.Add(entry.Amount)
		i, ok := index[entry.Category]
		if !ok {
			i = len(centers)
			index[entry.Category] = i
			centers = append(centers, CostCenter{Category: entry.Category, Amount: decimal.Zero})
		}
		centers[i].Amount = centers[i].Amount.Add(entry.Amount)
	}

	sortByAmountDesc(centers)
	if len(centers) > topCostCenters {
		centers = centers[:topCostCenters]
	}
	for i := range centers {
		centers[i].Percentage = decimal.Zero
		if !total.IsZero() {
			centers[i].Percentage = centers[i].Amount.
				Div(total).
				Mul(decimal.NewFromInt(100)).
				Round(2)
		}
	}

	risks, err := e.RiskSignals(ctx)
	if err != nil {
		return Insights{}, err
	}

	report := Insights{
		TopCostCenters: centers,
		Opportunities:  make([]string, 0, len(centers)),
		Risks:          risks,
	}
	for _, c := range centers {
		if c.Percentage.GreaterThan(costCenterReviewPct) {
			report.Opportunities = append(report.Opportunities, fmt.Sprintf(
				"%s represents %s%% of expenses. Review contracts and consumption targets.",
				c.Category, c.Percentage))
		} else {
			report.Opportunities = append(report.Opportunities, fmt.Sprintf(
				"Monitor %s (USD-equivalent %s) to keep spending stable.",
				c.Category, c.Amount.StringFixed(2)))
		}
	}

	if len(centers) == 0 {
		report.Summary = "No sufficient data available yet for automated recommendations."
	} else {
		names := make([]string, len(centers))
		for i, c := range centers {
			names[i] = c.Category
		}
		report.Summary = fmt.Sprintf("Current top cost centers: %s.", strings.Join(names, ", "))
	}
	return report, nil
}

// RiskSignals evaluates the trailing 60 days and returns exactly one
// message; the first matching rule wins.
func (e *Engine) RiskSignals(ctx context.Context) ([]string, error) {
	entries, err := e.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan entries: %w", err)
	}

	// Entry dates are midnight UTC, so the cutoff must be a calendar day too
	// or the boundary day would fall out of the window.
	n := e.now().UTC()
	cutoff := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -riskWindowDays)
	revenue := decimal.Zero
	expenses := decimal.Zero
	for _, entry := range entries {
		if entry.Date.Time.Before(cutoff) {
			continue
		}
		if entry.Type == core.Revenue {
			revenue = revenue.Add(entry.Amount)
		}
		if entry.Type.OperatingExpense() {
			expenses = expenses.Add(entry.Amount)
		}
	}

	switch {
	case revenue.IsZero() && expenses.IsPositive():
		return []string{"No revenue in the recent period: critical cash risk."}, nil
	case expenses.GreaterThan(revenue):
		return []string{"Expenses exceeded revenue in the last 60 days: review cost structure."}, nil
	case revenue.IsPositive() && expenses.Div(revenue).GreaterThan(marginAlert):
		return []string{"Expenses are above 85% of revenue: margin at risk."}, nil
	default:
		return []string{"Financial risk is currently controlled for the analyzed period."}, nil
	}
}

// sortByAmountDesc ranks cost centers by summed amount; equal amounts keep
// their first-occurrence order.
func sortByAmountDesc(centers []CostCenter) {
	sort.SliceStable(centers, func(i, j int) bool {
		return centers[i].Amount.GreaterThan(centers[j].Amount)
	})
}
