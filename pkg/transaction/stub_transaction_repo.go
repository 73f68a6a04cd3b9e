package transaction

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// StubTransactionRepo is an in-memory Repo for tests. FailSums makes
// every SumExpenses call fail, to exercise per-budget failure isolation.
type StubTransactionRepo struct {
	nextId   int
	data     []Transaction
	FailSums error
}

func NewStubTransactionRepo() *StubTransactionRepo {
	return &StubTransactionRepo{}
}

func (s *StubTransactionRepo) Add(transactions ...Transaction) {
	for _, transaction := range transactions {
		s.nextId++
		transaction.ID = s.nextId
		s.data = append(s.data, transaction)
	}
}

func (s *StubTransactionRepo) Reset() {
	s.nextId = 0
	s.data = nil
	s.FailSums = nil
}

func (s *StubTransactionRepo) Store(ctx context.Context, userId int, transaction Transaction) (int, error) {
	s.nextId++
	transaction.ID = s.nextId
	s.data = append(s.data, transaction)
	return s.nextId, nil
}

func (s *StubTransactionRepo) SumExpenses(ctx context.Context, userId int, from, to time.Time, categoryId int) (decimal.Decimal, error) {
	if s.FailSums != nil {
		return decimal.Zero, s.FailSums
	}
	sum := decimal.Zero
	for _, transaction := range s.data {
		if transaction.Kind != KindExpense {
			continue
		}
		if transaction.Date.Before(from) || transaction.Date.After(to) {
			continue
		}
		if categoryId != 0 && transaction.CategoryID != categoryId {
			continue
		}
		sum = sum.Add(transaction.Amount)
	}
	return sum, nil
}

func (s *StubTransactionRepo) FindExpensesSince(ctx context.Context, userId int, since time.Time) ([]Transaction, error) {
	var expenses []Transaction
	for _, transaction := range s.data {
		if transaction.Kind == KindExpense && !transaction.Date.Before(since) {
			expenses = append(expenses, transaction)
		}
	}
	sort.SliceStable(expenses, func(i, j int) bool { return expenses[i].Date.Before(expenses[j].Date) })
	return expenses, nil
}

func (s *StubTransactionRepo) FindRecent(ctx context.Context, userId int, limit int) ([]Transaction, error) {
	recent := make([]Transaction, len(s.data))
	copy(recent, s.data)
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].Date.After(recent[j].Date) })
	if len(recent) > limit {
		recent = recent[:limit]
	}
	return recent, nil
}
