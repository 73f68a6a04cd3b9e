package budget

import (
	"context"
	"sort"
)

// StubBudgetRepo is an in-memory BudgetRepo for tests. FailReads makes
// every read call fail, to exercise degraded batch behavior.
type StubBudgetRepo struct {
	nextId    int
	data      map[int]Budget
	FailReads error
}

func NewStubBudgetRepo() *StubBudgetRepo {
	return &StubBudgetRepo{data: map[int]Budget{}}
}

func (s *StubBudgetRepo) Store(ctx context.Context, userId int, budget Budget) (int, error) {
	s.nextId++
	budget.ID = s.nextId
	s.data[s.nextId] = budget
	return s.nextId, nil
}

func (s *StubBudgetRepo) GetAll(ctx context.Context, userId int) ([]Budget, error) {
	if s.FailReads != nil {
		return nil, s.FailReads
	}
	budgets := make([]Budget, 0, len(s.data))
	for _, budget := range s.data {
		budgets = append(budgets, budget)
	}
	sort.Slice(budgets, func(i, j int) bool { return budgets[i].ID < budgets[j].ID })
	return budgets, nil
}

func (s *StubBudgetRepo) FindById(ctx context.Context, userId int, budgetId int) (*Budget, error) {
	if s.FailReads != nil {
		return nil, s.FailReads
	}
	budget, ok := s.data[budgetId]
	if !ok {
		return nil, nil
	}
	return &budget, nil
}

func (s *StubBudgetRepo) Update(ctx context.Context, userId int, budget Budget) (bool, error) {
	if _, ok := s.data[budget.ID]; !ok {
		return false, nil
	}
	s.data[budget.ID] = budget
	return true, nil
}

func (s *StubBudgetRepo) Delete(ctx context.Context, userId int, budgetId int) (bool, error) {
	if _, ok := s.data[budgetId]; !ok {
		return false, nil
	}
	delete(s.data, budgetId)
	return true, nil
}
