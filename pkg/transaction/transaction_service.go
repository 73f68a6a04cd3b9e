package transaction

import (
	"context"
	"fmt"

	"github.com/pennywise/pennywise/pkg/user"
)

type Service interface {
	Record(ctx context.Context, transaction Transaction) (Transaction, error)
	GetRecent(ctx context.Context, limit int) ([]Transaction, error)
}

type ServiceImpl struct {
	repo Repo
}

func NewTransactionService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) Record(ctx context.Context, transaction Transaction) (Transaction, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Transaction{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if !transaction.Kind.Valid() {
		return Transaction{}, fmt.Errorf("invalid transaction kind: %q", transaction.Kind)
	}
	id, err := s.repo.Store(ctx, userId, transaction)
	if err != nil {
		return Transaction{}, err
	}
	transaction.ID = id
	return transaction, nil
}

func (s *ServiceImpl) GetRecent(ctx context.Context, limit int) ([]Transaction, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.FindRecent(ctx, userId, limit)
}
