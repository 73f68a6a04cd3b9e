package stats

import (
	"context"
	"fmt"

	"github.com/pennywise/pennywise/pkg/budget"
	"github.com/shopspring/decimal"
)

type StatsService interface {
	GetStats(ctx context.Context) (Summary, error)
}

type StatsServiceImpl struct {
	budgets budget.BudgetService
}

func NewStatsServiceImpl(budgets budget.BudgetService) *StatsServiceImpl {
	return &StatsServiceImpl{budgets: budgets}
}

// GetStats sums allotted and spent amounts over the current user's
// active budgets and counts them by status.
func (s *StatsServiceImpl) GetStats(ctx context.Context) (Summary, error) {
	budgets, err := s.budgets.List(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("could not list budgets: %w", err)
	}

	summary := Summary{
		TotalBudget:    decimal.Zero,
		TotalSpent:     decimal.Zero,
		TotalRemaining: decimal.Zero,
	}
	for _, b := range budgets {
		if !b.Active {
			continue
		}
		summary.ActiveCount++
		summary.TotalBudget = summary.TotalBudget.Add(b.Amount)
		summary.TotalSpent = summary.TotalSpent.Add(b.Spent)
		summary.TotalRemaining = summary.TotalRemaining.Add(b.Remaining)

		switch b.Status {
		case budget.StatusExceeded:
			summary.ExceededCount++
		case budget.StatusWarning:
			summary.WarningCount++
		default:
			summary.OnTrackCount++
		}
	}

	if summary.TotalBudget.Sign() > 0 {
		summary.OverallProgress, _ = summary.TotalSpent.
			Div(summary.TotalBudget).
			Mul(decimal.NewFromInt(100)).
			Float64()
	}
	return summary, nil
}
