package stats

import "github.com/shopspring/decimal"

// Summary aggregates the current state of an owner's active budgets.
type Summary struct {
	TotalBudget     decimal.Decimal
	TotalSpent      decimal.Decimal
	TotalRemaining  decimal.Decimal
	OverallProgress float64
	ActiveCount     int
	ExceededCount   int
	WarningCount    int
	OnTrackCount    int
}
