package alert

import (
	"context"
	"fmt"

	"github.com/pennywise/pennywise/internal/config"
	"github.com/pennywise/pennywise/internal/utils"
	"github.com/pennywise/pennywise/pkg/budget"
	"github.com/shopspring/decimal"
)

type Service interface {
	GetAlerts(ctx context.Context) ([]Alert, error)
}

type ServiceImpl struct {
	budgets budget.BudgetService
	clock   utils.Clock
	policy  config.BudgetPolicy
}

func NewAlertService(budgets budget.BudgetService, clock utils.Clock, policy config.BudgetPolicy) *ServiceImpl {
	return &ServiceImpl{budgets: budgets, clock: clock, policy: policy}
}

// GetAlerts derives alerts for all of the current user's active budgets.
// Threshold alerts fire on current progress; a projection alert fires
// for a budget that is still healthy but burning fast enough that its
// extrapolated spend would blow past the remaining amount. The two
// families never overlap on a single budget.
func (s *ServiceImpl) GetAlerts(ctx context.Context) ([]Alert, error) {
	budgets, err := s.budgets.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list budgets: %w", err)
	}

	alerts := make([]Alert, 0)
	for _, b := range budgets {
		if !b.Active {
			continue
		}
		if a, ok := s.thresholdAlert(b); ok {
			alerts = append(alerts, a)
			continue
		}
		if a, ok := s.projectionAlert(b); ok {
			alerts = append(alerts, a)
		}
	}
	return alerts, nil
}

func (s *ServiceImpl) thresholdAlert(b budget.BudgetProgress) (Alert, bool) {
	switch {
	case b.Progress >= s.policy.ExceededThreshold:
		return Alert{
			Kind:     KindExceeded,
			BudgetID: b.ID,
			Category: b.CategoryName,
			Message: fmt.Sprintf("Budget for %s exceeded: %s spent of %s",
				b.CategoryName, b.Spent, b.Amount),
			Progress: b.Progress,
		}, true
	case b.Progress >= s.policy.WarningThreshold:
		return Alert{
			Kind:     KindWarning,
			BudgetID: b.ID,
			Category: b.CategoryName,
			Message: fmt.Sprintf("Budget for %s is at %.0f%% (%s of %s spent)",
				b.CategoryName, b.Progress, b.Spent, b.Amount),
			Progress: b.Progress,
		}, true
	}
	return Alert{}, false
}

// projectionAlert extrapolates the current daily spend velocity over the
// rest of the window. It only applies below the warning threshold, so it
// gives advance notice before a threshold alert would fire.
func (s *ServiceImpl) projectionAlert(b budget.BudgetProgress) (Alert, bool) {
	now := s.clock.Now()
	if now.Before(b.StartDate) || !now.Before(b.EndDate) {
		return Alert{}, false
	}

	daysElapsed := int(now.Sub(b.StartDate).Hours() / 24)
	if daysElapsed < 1 {
		daysElapsed = 1
	}
	daysLeft := int(b.EndDate.Sub(now).Hours() / 24)
	if daysLeft < 1 {
		return Alert{}, false
	}

	dailyAverage := b.Spent.Div(decimal.NewFromInt(int64(daysElapsed)))
	projectedAdditional := dailyAverage.Mul(decimal.NewFromInt(int64(daysLeft)))
	if !projectedAdditional.GreaterThan(b.Remaining) {
		return Alert{}, false
	}

	return Alert{
		Kind:     KindProjection,
		BudgetID: b.ID,
		Category: b.CategoryName,
		Message: fmt.Sprintf("Spending on %s is on pace to exceed the budget: about %s more projected over the next %d days, with %s remaining",
			b.CategoryName, projectedAdditional.Round(2), daysLeft, b.Remaining),
		Progress: b.Progress,
	}, true
}
