package budget

import (
	"github.com/pennywise/pennywise/internal/config"
	"github.com/shopspring/decimal"
)

// Classify maps spend against an allotted amount to a progress
// percentage, a discrete status, and the remaining amount. Remaining is
// floored at zero even when the budget is exceeded.
func Classify(amount, spent decimal.Decimal, policy config.BudgetPolicy) (float64, BudgetStatus, decimal.Decimal) {
	progress := 0.0
	if amount.Sign() > 0 {
		progress, _ = spent.Div(amount).Mul(decimal.NewFromInt(100)).Float64()
	}

	status := StatusOnTrack
	switch {
	case progress >= policy.ExceededThreshold:
		status = StatusExceeded
	case progress >= policy.WarningThreshold:
		status = StatusWarning
	}

	remaining := amount.Sub(spent)
	if remaining.Sign() < 0 {
		remaining = decimal.Zero
	}
	return progress, status, remaining
}
