package domain

import "github.com/shopspring/decimal"

// StatsPeriod selects the lookback window of a series.
type StatsPeriod string

const (
	PeriodWeek  StatsPeriod = "week"  // 7 daily buckets
	PeriodMonth StatsPeriod = "month" // 30 daily buckets
	PeriodYear  StatsPeriod = "year"  // 12 monthly buckets
)

// IsValid reports whether p is a known period.
func (p StatsPeriod) IsValid() bool {
	return p == PeriodWeek || p == PeriodMonth || p == PeriodYear
}

// SeriesBucket is one point of an income/expense series.
type SeriesBucket struct {
	Label   string          `json:"label"` // "2026-10-19" or "2026-10"
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// JarShare is one slice of the jar distribution.
type JarShare struct {
	Jar     JarType         `json:"jar"`
	Balance decimal.Decimal `json:"balance"`
	Share   decimal.Decimal `json:"share"` // Fraction of the positive total
}

// LedgerSummary aggregates the derived figures shown on the dashboard.
type LedgerSummary struct {
	Balances     JarBalance      `json:"balances"`
	TotalBalance decimal.Decimal `json:"totalBalance"`
	Debt         decimal.Decimal `json:"debt"`
	Lent         decimal.Decimal `json:"lent"`
	NetWorth     decimal.Decimal `json:"netWorth"`
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	Distribution []JarShare      `json:"distribution"`
}
