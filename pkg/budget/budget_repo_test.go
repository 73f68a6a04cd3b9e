package budget

import (
	"context"
	"testing"
	"time"

	"github.com/pennywise/pennywise/internal/test_utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudgetRepoImpl_StoreAndGetAll(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	userId := test_utils.CreateTestUser(t, db, "repo-test-user")
	repo := NewBudgetRepo(db)
	ctx := context.Background()

	_, err := db.Exec(`INSERT INTO category (user_id, name) VALUES (?, ?)`, userId, "Food")
	require.NoError(t, err)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	id, err := repo.Store(ctx, userId, Budget{
		Amount:    decimal.RequireFromString("1000.50"),
		Period:    PeriodMonthly,
		StartDate: start,
		EndDate:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		Scope:     CategoryScope(1),
		Active:    true,
	})
	require.NoError(t, err)
	assert.NotZero(t, id)

	budgets, err := repo.GetAll(ctx, userId)
	require.NoError(t, err)
	require.Len(t, budgets, 1)

	stored := budgets[0]
	assert.Equal(t, id, stored.ID)
	assert.True(t, stored.Amount.Equal(decimal.RequireFromString("1000.50")))
	assert.Equal(t, PeriodMonthly, stored.Period)
	assert.Equal(t, start, stored.StartDate)
	categoryId, scoped := stored.Scope.CategoryId()
	assert.True(t, scoped)
	assert.Equal(t, 1, categoryId)
	assert.True(t, stored.Active)
}

func TestBudgetRepoImpl_TotalScopeRoundTripsAsNull(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	userId := test_utils.CreateTestUser(t, db, "repo-test-user")
	repo := NewBudgetRepo(db)
	ctx := context.Background()

	id, err := repo.Store(ctx, userId, Budget{
		Amount:    decimal.NewFromInt(500),
		Period:    PeriodWeekly,
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
		Active:    true,
	})
	require.NoError(t, err)

	stored, err := repo.FindById(ctx, userId, id)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.Scope.IsTotal())
}

func TestBudgetRepoImpl_FindById_ScopedToOwner(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	ownerId := test_utils.CreateTestUser(t, db, "owner")
	otherId := test_utils.CreateTestUser(t, db, "other")
	repo := NewBudgetRepo(db)
	ctx := context.Background()

	id, err := repo.Store(ctx, ownerId, Budget{
		Amount:    decimal.NewFromInt(500),
		Period:    PeriodMonthly,
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		Active:    true,
	})
	require.NoError(t, err)

	found, err := repo.FindById(ctx, otherId, id)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestBudgetRepoImpl_UpdateAndDelete(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	userId := test_utils.CreateTestUser(t, db, "repo-test-user")
	repo := NewBudgetRepo(db)
	ctx := context.Background()

	id, err := repo.Store(ctx, userId, Budget{
		Amount:    decimal.NewFromInt(500),
		Period:    PeriodMonthly,
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		Active:    true,
	})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, userId, Budget{
		ID:        id,
		Amount:    decimal.NewFromInt(750),
		Period:    PeriodYearly,
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Active:    false,
	})
	require.NoError(t, err)
	assert.True(t, updated)

	stored, err := repo.FindById(ctx, userId, id)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.Amount.Equal(decimal.NewFromInt(750)))
	assert.Equal(t, PeriodYearly, stored.Period)
	assert.False(t, stored.Active)

	deleted, err := repo.Delete(ctx, userId, id)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, userId, id)
	require.NoError(t, err)
	assert.False(t, deleted)
}
