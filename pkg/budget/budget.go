package budget

import (
	"time"

	"github.com/shopspring/decimal"
)

type Period string

const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

func (p Period) Valid() bool {
	return p == PeriodWeekly || p == PeriodMonthly || p == PeriodYearly
}

type BudgetStatus string

const (
	StatusOnTrack  BudgetStatus = "on_track"
	StatusWarning  BudgetStatus = "warning"
	StatusExceeded BudgetStatus = "exceeded"
)

// BudgetScope narrows a budget to a single expense category. The zero
// value covers all of the owner's expense categories.
type BudgetScope struct {
	categoryId int
}

func TotalScope() BudgetScope {
	return BudgetScope{}
}

func CategoryScope(categoryId int) BudgetScope {
	return BudgetScope{categoryId: categoryId}
}

func (s BudgetScope) IsTotal() bool {
	return s.categoryId == 0
}

// CategoryId returns the scoped category id, and false for a total scope.
func (s BudgetScope) CategoryId() (int, bool) {
	return s.categoryId, s.categoryId != 0
}

type Budget struct {
	ID     int
	Amount decimal.Decimal
	Period Period
	// StartDate and EndDate delimit the budget window. EndDate is always
	// derived from (StartDate, Period) and stored only for range queries.
	StartDate time.Time
	EndDate   time.Time
	Scope     BudgetScope
	Active    bool
}

// BudgetProgress is a budget with its spend computed against the
// transaction ledger. It is derived on every read and never persisted.
type BudgetProgress struct {
	Budget
	CategoryName string
	Spent        decimal.Decimal
	Remaining    decimal.Decimal
	Progress     float64
	Status       BudgetStatus
}

// BudgetUpdate carries a partial update; nil fields keep current values.
type BudgetUpdate struct {
	Amount    *decimal.Decimal
	Period    *Period
	StartDate *time.Time
	Scope     *BudgetScope
	Active    *bool
}
