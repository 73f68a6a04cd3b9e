package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pennywise/pennywise/internal/config"
	"github.com/pennywise/pennywise/pkg/budget"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBudgetService struct {
	progresses []budget.BudgetProgress
	err        error
}

func (s *stubBudgetService) Create(context.Context, budget.Budget) (budget.Budget, error) {
	return budget.Budget{}, nil
}

func (s *stubBudgetService) List(context.Context) ([]budget.BudgetProgress, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.progresses, nil
}

func (s *stubBudgetService) Get(context.Context, int) (budget.BudgetProgress, error) {
	return budget.BudgetProgress{}, nil
}

func (s *stubBudgetService) Update(context.Context, int, budget.BudgetUpdate) (budget.Budget, error) {
	return budget.Budget{}, nil
}

func (s *stubBudgetService) Delete(context.Context, int) error { return nil }

func (s *stubBudgetService) ToggleActive(context.Context, int) (budget.Budget, error) {
	return budget.Budget{}, nil
}

func progressFor(id int, amount, spent int64, active bool) budget.BudgetProgress {
	policy := config.BudgetPolicy{WarningThreshold: 80, ExceededThreshold: 100}
	amountDec := decimal.NewFromInt(amount)
	spentDec := decimal.NewFromInt(spent)
	progress, status, remaining := budget.Classify(amountDec, spentDec, policy)
	return budget.BudgetProgress{
		Budget: budget.Budget{
			ID:        id,
			Amount:    amountDec,
			Period:    budget.PeriodMonthly,
			StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			Active:    active,
		},
		Spent:     spentDec,
		Remaining: remaining,
		Progress:  progress,
		Status:    status,
	}
}

func TestGetStats_AggregatesActiveBudgets(t *testing.T) {
	budgets := &stubBudgetService{progresses: []budget.BudgetProgress{
		progressFor(1, 1000, 500, true),  // on track
		progressFor(2, 1000, 850, true),  // warning
		progressFor(3, 1000, 1200, true), // exceeded
		progressFor(4, 1000, 100, true),  // on track
	}}
	service := NewStatsServiceImpl(budgets)

	summary, err := service.GetStats(context.Background())
	require.NoError(t, err)

	assert.True(t, summary.TotalBudget.Equal(decimal.NewFromInt(4000)), "total budget = %s", summary.TotalBudget)
	assert.True(t, summary.TotalSpent.Equal(decimal.NewFromInt(2650)), "total spent = %s", summary.TotalSpent)
	// Remaining floors at zero per budget, so the exceeded one adds nothing.
	assert.True(t, summary.TotalRemaining.Equal(decimal.NewFromInt(1550)), "total remaining = %s", summary.TotalRemaining)
	assert.InDelta(t, 66.25, summary.OverallProgress, 0.0001)
	assert.Equal(t, 4, summary.ActiveCount)
	assert.Equal(t, 2, summary.OnTrackCount)
	assert.Equal(t, 1, summary.WarningCount)
	assert.Equal(t, 1, summary.ExceededCount)
}

func TestGetStats_IgnoresInactiveBudgets(t *testing.T) {
	budgets := &stubBudgetService{progresses: []budget.BudgetProgress{
		progressFor(1, 1000, 500, true),
		progressFor(2, 9999, 9999, false),
	}}
	service := NewStatsServiceImpl(budgets)

	summary, err := service.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.ActiveCount)
	assert.True(t, summary.TotalBudget.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, 0, summary.ExceededCount)
}

func TestGetStats_EmptyList(t *testing.T) {
	service := NewStatsServiceImpl(&stubBudgetService{})

	summary, err := service.GetStats(context.Background())
	require.NoError(t, err)

	assert.True(t, summary.TotalBudget.IsZero())
	assert.True(t, summary.TotalSpent.IsZero())
	assert.Zero(t, summary.OverallProgress)
	assert.Zero(t, summary.ActiveCount)
}

func TestGetStats_PropagatesListFailure(t *testing.T) {
	service := NewStatsServiceImpl(&stubBudgetService{err: errors.New("storage offline")})

	_, err := service.GetStats(context.Background())
	assert.Error(t, err)
}
