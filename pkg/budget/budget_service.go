package budget

import (
	"context"
	"fmt"

	"github.com/pennywise/pennywise/internal/config"
	"github.com/pennywise/pennywise/pkg/category"
	"github.com/pennywise/pennywise/pkg/transaction"
	"github.com/pennywise/pennywise/pkg/user"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// totalScopeLabel names the category column of a budget that covers all
// expense categories.
const totalScopeLabel = "All categories"

type BudgetService interface {
	Create(ctx context.Context, budget Budget) (Budget, error)
	// List returns every budget of the current user with its computed
	// progress. A failing spend aggregation for one budget degrades that
	// budget to zero spend; a failing budget read degrades the whole
	// result to an empty list. Dashboards stay available either way.
	List(ctx context.Context) ([]BudgetProgress, error)
	Get(ctx context.Context, id int) (BudgetProgress, error)
	Update(ctx context.Context, id int, update BudgetUpdate) (Budget, error)
	Delete(ctx context.Context, id int) error
	ToggleActive(ctx context.Context, id int) (Budget, error)
}

type BudgetServiceImpl struct {
	repo         BudgetRepo
	transactions transaction.Repo
	categories   category.Service
	policy       config.BudgetPolicy
}

func NewBudgetServiceImpl(
	repo BudgetRepo,
	transactions transaction.Repo,
	categories category.Service,
	policy config.BudgetPolicy,
) *BudgetServiceImpl {
	return &BudgetServiceImpl{
		repo:         repo,
		transactions: transactions,
		categories:   categories,
		policy:       policy,
	}
}

func (s *BudgetServiceImpl) Create(ctx context.Context, budget Budget) (Budget, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Budget{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validate(&budget); err != nil {
		return Budget{}, err
	}
	budget.EndDate = WindowEnd(budget.StartDate, budget.Period)
	budget.Active = true

	id, err := s.repo.Store(ctx, userId, budget)
	if err != nil {
		return Budget{}, err
	}
	budget.ID = id

	return budget, nil
}

func (s *BudgetServiceImpl) List(ctx context.Context) ([]BudgetProgress, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	budgets, err := s.repo.GetAll(ctx, userId)
	if err != nil {
		log.Errorf("could not list budgets for user %d, degrading to empty list: %v", userId, err)
		return []BudgetProgress{}, nil
	}
	return s.progressForAll(ctx, userId, budgets), nil
}

func (s *BudgetServiceImpl) Get(ctx context.Context, id int) (BudgetProgress, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return BudgetProgress{}, fmt.Errorf("failed to get current user: %w", err)
	}
	budget, err := s.repo.FindById(ctx, userId, id)
	if err != nil {
		return BudgetProgress{}, err
	}
	if budget == nil {
		return BudgetProgress{}, ErrBudgetNotFound
	}

	spent, err := s.spentFor(ctx, userId, *budget)
	if err != nil {
		return BudgetProgress{}, fmt.Errorf("could not aggregate spend for budget %d: %w", id, err)
	}
	return s.progress(*budget, spent, s.categoryNames(ctx)), nil
}

func (s *BudgetServiceImpl) Update(ctx context.Context, id int, update BudgetUpdate) (Budget, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Budget{}, fmt.Errorf("failed to get current user: %w", err)
	}
	existing, err := s.repo.FindById(ctx, userId, id)
	if err != nil {
		return Budget{}, err
	}
	if existing == nil {
		return Budget{}, ErrBudgetNotFound
	}

	budget := *existing
	if update.Amount != nil {
		budget.Amount = *update.Amount
	}
	if update.Period != nil {
		budget.Period = *update.Period
	}
	if update.StartDate != nil {
		budget.StartDate = *update.StartDate
	}
	if update.Scope != nil {
		budget.Scope = *update.Scope
	}
	if update.Active != nil {
		budget.Active = *update.Active
	}
	if err := validate(&budget); err != nil {
		return Budget{}, err
	}
	// The window is always recomputed so the stored end date can never
	// drift from (start date, period).
	budget.EndDate = WindowEnd(budget.StartDate, budget.Period)

	updated, err := s.repo.Update(ctx, userId, budget)
	if err != nil {
		return Budget{}, err
	}
	if !updated {
		log.Warnf("budget not updated, probably because it does not exist (%d) or the user (%d) is not the owner", id, userId)
		return Budget{}, ErrBudgetNotFound
	}
	return budget, nil
}

func (s *BudgetServiceImpl) Delete(ctx context.Context, id int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}

	deleted, err := s.repo.Delete(ctx, userId, id)
	if err != nil {
		return err
	}
	if !deleted {
		log.Warnf("budget not deleted, probably because it does not exist (%d) or the user (%d) is not the owner", id, userId)
		return ErrBudgetNotFound
	}
	return nil
}

func (s *BudgetServiceImpl) ToggleActive(ctx context.Context, id int) (Budget, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Budget{}, fmt.Errorf("failed to get current user: %w", err)
	}
	existing, err := s.repo.FindById(ctx, userId, id)
	if err != nil {
		return Budget{}, err
	}
	if existing == nil {
		return Budget{}, ErrBudgetNotFound
	}

	budget := *existing
	budget.Active = !budget.Active
	updated, err := s.repo.Update(ctx, userId, budget)
	if err != nil {
		return Budget{}, err
	}
	if !updated {
		return Budget{}, ErrBudgetNotFound
	}
	return budget, nil
}

// progressForAll computes the spend of each budget concurrently. Budgets
// are independent of each other, so the aggregation fans out across a
// bounded worker pool; one failing item is replaced by its safe default
// and never blocks or fails the rest.
func (s *BudgetServiceImpl) progressForAll(ctx context.Context, userId int, budgets []Budget) []BudgetProgress {
	names := s.categoryNames(ctx)

	workers := s.policy.AggregationWorkers
	if workers < 1 {
		workers = 1
	}

	results := make([]BudgetProgress, len(budgets))
	g := &errgroup.Group{}
	g.SetLimit(workers)
	for i, budget := range budgets {
		g.Go(func() error {
			spent, err := s.spentFor(ctx, userId, budget)
			if err != nil {
				log.Errorf("could not aggregate spend for budget %d, assuming zero spend: %v", budget.ID, err)
				spent = decimal.Zero
			}
			results[i] = s.progress(budget, spent, names)
			return nil
		})
	}
	// Workers never return errors; failures are degraded in place.
	_ = g.Wait()
	return results
}

func (s *BudgetServiceImpl) spentFor(ctx context.Context, userId int, budget Budget) (decimal.Decimal, error) {
	categoryId, _ := budget.Scope.CategoryId()
	return s.transactions.SumExpenses(ctx, userId, budget.StartDate, budget.EndDate, categoryId)
}

func (s *BudgetServiceImpl) progress(budget Budget, spent decimal.Decimal, names map[int]string) BudgetProgress {
	progress, status, remaining := Classify(budget.Amount, spent, s.policy)

	name := totalScopeLabel
	if categoryId, ok := budget.Scope.CategoryId(); ok {
		name = names[categoryId]
		if name == "" {
			name = fmt.Sprintf("Category %d", categoryId)
		}
	}

	return BudgetProgress{
		Budget:       budget,
		CategoryName: name,
		Spent:        spent,
		Remaining:    remaining,
		Progress:     progress,
		Status:       status,
	}
}

func (s *BudgetServiceImpl) categoryNames(ctx context.Context) map[int]string {
	names, err := s.categories.NamesById(ctx)
	if err != nil {
		log.Warnf("could not resolve category names: %v", err)
		return map[int]string{}
	}
	return names
}

func validate(budget *Budget) error {
	if budget.Amount.Sign() <= 0 {
		return &ValidationError{Field: "amount", Reason: "must be a positive amount"}
	}
	if budget.Period == "" {
		return &ValidationError{Field: "period", Reason: "is required"}
	}
	if budget.StartDate.IsZero() {
		return &ValidationError{Field: "startDate", Reason: "is required"}
	}
	if !budget.Period.Valid() {
		// Resilience over strictness: an unknown period is degraded to
		// monthly instead of rejected.
		log.Warnf("unknown budget period %q, falling back to monthly", budget.Period)
		budget.Period = PeriodMonthly
	}
	return nil
}
