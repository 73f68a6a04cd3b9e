package budget

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pennywise/pennywise/pkg/category"
	"github.com/pennywise/pennywise/pkg/transaction"
	"github.com/pennywise/pennywise/pkg/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) (*BudgetServiceImpl, *StubBudgetRepo, *transaction.StubTransactionRepo, *category.StubCategoryRepo, context.Context) {
	t.Helper()
	budgetRepo := NewStubBudgetRepo()
	transactionRepo := transaction.NewStubTransactionRepo()
	categoryRepo := category.NewStubCategoryRepo()
	service := NewBudgetServiceImpl(budgetRepo, transactionRepo, category.NewCategoryService(categoryRepo), testPolicy)
	ctx := user.WithUser(context.Background(), user.User{
		Id:       1,
		Uid:      uuid.NewString(),
		Username: "test-user-1",
	})
	return service, budgetRepo, transactionRepo, categoryRepo, ctx
}

func expenseOn(date time.Time, amount int64, categoryId int) transaction.Transaction {
	return transaction.Transaction{
		Kind:       transaction.KindExpense,
		Amount:     decimal.NewFromInt(amount),
		Date:       date,
		CategoryID: categoryId,
	}
}

func TestBudgetService_Create_DerivesEndDate(t *testing.T) {
	service, _, _, _, ctx := setupService(t)

	created, err := service.Create(ctx, Budget{
		Amount:    decimal.NewFromInt(1000),
		Period:    PeriodMonthly,
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.True(t, created.Active)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), created.EndDate)
}

func TestBudgetService_Create_RejectsMissingFields(t *testing.T) {
	service, _, _, _, ctx := setupService(t)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		budget Budget
	}{
		{"missing amount", Budget{Period: PeriodMonthly, StartDate: start}},
		{"negative amount", Budget{Amount: decimal.NewFromInt(-5), Period: PeriodMonthly, StartDate: start}},
		{"missing period", Budget{Amount: decimal.NewFromInt(100), StartDate: start}},
		{"missing start date", Budget{Amount: decimal.NewFromInt(100), Period: PeriodMonthly}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(ctx, tt.budget)
			var validationErr *ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestBudgetService_Create_UnknownPeriodFallsBackToMonthly(t *testing.T) {
	service, _, _, _, ctx := setupService(t)

	created, err := service.Create(ctx, Budget{
		Amount:    decimal.NewFromInt(1000),
		Period:    Period("quarterly"),
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, PeriodMonthly, created.Period)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), created.EndDate)
}

func TestBudgetService_List_ScopesSpendToCategory(t *testing.T) {
	service, _, transactionRepo, categoryRepo, ctx := setupService(t)
	foodId, _ := categoryRepo.Store(ctx, 1, category.Category{Name: "Food"})
	transportId, _ := categoryRepo.Store(ctx, 1, category.Category{Name: "Transport"})

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	inWindow := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	transactionRepo.Add(
		expenseOn(inWindow, 100, foodId),
		expenseOn(inWindow, 50, transportId),
		expenseOn(inWindow, 25, 0),
		// Outside the window, must never count.
		expenseOn(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), 999, foodId),
		// Income never counts as spend.
		transaction.Transaction{Kind: transaction.KindIncome, Amount: decimal.NewFromInt(500), Date: inWindow},
	)

	_, err := service.Create(ctx, Budget{Amount: decimal.NewFromInt(1000), Period: PeriodMonthly, StartDate: start})
	require.NoError(t, err)
	_, err = service.Create(ctx, Budget{Amount: decimal.NewFromInt(300), Period: PeriodMonthly, StartDate: start, Scope: CategoryScope(foodId)})
	require.NoError(t, err)

	budgets, err := service.List(ctx)
	require.NoError(t, err)
	require.Len(t, budgets, 2)

	total := budgets[0]
	assert.Equal(t, "All categories", total.CategoryName)
	assert.True(t, total.Spent.Equal(decimal.NewFromInt(175)), "total spent = %s", total.Spent)

	food := budgets[1]
	assert.Equal(t, "Food", food.CategoryName)
	assert.True(t, food.Spent.Equal(decimal.NewFromInt(100)), "food spent = %s", food.Spent)
}

func TestBudgetService_List_IncludesWindowBoundaries(t *testing.T) {
	service, _, transactionRepo, _, ctx := setupService(t)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	transactionRepo.Add(
		expenseOn(start, 10, 0),
		expenseOn(end, 20, 0),
		expenseOn(end.AddDate(0, 0, 1), 40, 0),
	)

	_, err := service.Create(ctx, Budget{Amount: decimal.NewFromInt(1000), Period: PeriodMonthly, StartDate: start})
	require.NoError(t, err)

	budgets, err := service.List(ctx)
	require.NoError(t, err)
	require.Len(t, budgets, 1)
	assert.True(t, budgets[0].Spent.Equal(decimal.NewFromInt(30)), "spent = %s", budgets[0].Spent)
}

func TestBudgetService_List_IsolatesAggregationFailure(t *testing.T) {
	service, _, transactionRepo, _, ctx := setupService(t)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := service.Create(ctx, Budget{Amount: decimal.NewFromInt(1000), Period: PeriodMonthly, StartDate: start})
	require.NoError(t, err)
	_, err = service.Create(ctx, Budget{Amount: decimal.NewFromInt(2000), Period: PeriodWeekly, StartDate: start})
	require.NoError(t, err)

	transactionRepo.FailSums = errors.New("ledger unavailable")

	budgets, err := service.List(ctx)
	require.NoError(t, err)
	require.Len(t, budgets, 2)
	for _, b := range budgets {
		assert.True(t, b.Spent.IsZero())
		assert.Equal(t, StatusOnTrack, b.Status)
		assert.True(t, b.Remaining.Equal(b.Amount))
	}
}

func TestBudgetService_List_DegradesToEmptyOnRepoFailure(t *testing.T) {
	service, budgetRepo, _, _, ctx := setupService(t)
	budgetRepo.FailReads = errors.New("db down")

	budgets, err := service.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, budgets)
}

func TestBudgetService_List_IsIdempotent(t *testing.T) {
	service, _, transactionRepo, _, ctx := setupService(t)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	transactionRepo.Add(expenseOn(start.AddDate(0, 0, 3), 120, 0))

	_, err := service.Create(ctx, Budget{Amount: decimal.NewFromInt(1000), Period: PeriodMonthly, StartDate: start})
	require.NoError(t, err)

	first, err := service.List(ctx)
	require.NoError(t, err)
	second, err := service.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBudgetService_Get(t *testing.T) {
	service, _, transactionRepo, _, ctx := setupService(t)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	transactionRepo.Add(expenseOn(start.AddDate(0, 0, 5), 850000, 0))

	created, err := service.Create(ctx, Budget{Amount: decimal.NewFromInt(1000000), Period: PeriodMonthly, StartDate: start})
	require.NoError(t, err)

	progress, err := service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 85.0, progress.Progress)
	assert.Equal(t, StatusWarning, progress.Status)

	_, err = service.Get(ctx, 9999)
	assert.ErrorIs(t, err, ErrBudgetNotFound)
}

func TestBudgetService_Update_RecomputesWindow(t *testing.T) {
	service, _, _, _, ctx := setupService(t)
	created, err := service.Create(ctx, Budget{
		Amount:    decimal.NewFromInt(1000),
		Period:    PeriodMonthly,
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	weekly := PeriodWeekly
	updated, err := service.Update(ctx, created.ID, BudgetUpdate{Period: &weekly})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), updated.EndDate)
	// Untouched fields keep their values.
	assert.True(t, updated.Amount.Equal(decimal.NewFromInt(1000)))

	newStart := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	updated, err = service.Update(ctx, created.ID, BudgetUpdate{StartDate: &newStart})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC), updated.EndDate)
}

func TestBudgetService_Update_NotFound(t *testing.T) {
	service, _, _, _, ctx := setupService(t)
	amount := decimal.NewFromInt(100)
	_, err := service.Update(ctx, 42, BudgetUpdate{Amount: &amount})
	assert.ErrorIs(t, err, ErrBudgetNotFound)
}

func TestBudgetService_ToggleActive(t *testing.T) {
	service, _, _, _, ctx := setupService(t)
	created, err := service.Create(ctx, Budget{
		Amount:    decimal.NewFromInt(1000),
		Period:    PeriodMonthly,
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.True(t, created.Active)

	toggled, err := service.ToggleActive(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Active)

	toggled, err = service.ToggleActive(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Active)
}

func TestBudgetService_Delete(t *testing.T) {
	service, _, _, _, ctx := setupService(t)
	created, err := service.Create(ctx, Budget{
		Amount:    decimal.NewFromInt(1000),
		Period:    PeriodMonthly,
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, created.ID))
	assert.ErrorIs(t, service.Delete(ctx, created.ID), ErrBudgetNotFound)
}
