package budget

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const dateFormat = "2006-01-02"

type BudgetRepo interface {
	// Store stores a new Budget to the database
	Store(ctx context.Context, userId int, budget Budget) (int, error)
	GetAll(ctx context.Context, userId int) ([]Budget, error)
	// FindById returns nil when no budget with that id belongs to the user.
	FindById(ctx context.Context, userId int, budgetId int) (*Budget, error)
	Update(ctx context.Context, userId int, budget Budget) (bool, error)
	Delete(ctx context.Context, userId int, budgetId int) (bool, error)
}

type BudgetRepoImpl struct {
	db *sql.DB
}

func NewBudgetRepo(db *sql.DB) *BudgetRepoImpl {
	return &BudgetRepoImpl{db: db}
}

func (bi *BudgetRepoImpl) Store(ctx context.Context, userId int, budget Budget) (int, error) {
	query := `INSERT INTO budget (
					user_id,
					amount,
					period,
					start_date,
					end_date,
					category_id,
					active
				) VALUES (?, ?, ?, ?, ?, ?, ?)`

	result, err := bi.db.ExecContext(ctx, query,
		userId,
		budget.Amount.String(),
		string(budget.Period),
		budget.StartDate.Format(dateFormat),
		budget.EndDate.Format(dateFormat),
		categoryParam(budget.Scope),
		budget.Active,
	)
	if err != nil {
		err := fmt.Errorf("could not store budget: %w", err)
		log.Error(err)
		return 0, err
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		err := fmt.Errorf("could not retrieve last insert id: %w", err)
		log.Error(err)
		return 0, err
	}

	return int(lastInsertID), nil
}

func (bi *BudgetRepoImpl) GetAll(ctx context.Context, userId int) ([]Budget, error) {
	query := `SELECT id, amount, period, start_date, end_date, category_id, active
				FROM budget WHERE user_id = ? ORDER BY start_date, id`
	rows, err := bi.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query budgets: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var budgets []Budget
	for rows.Next() {
		budget, err := scanBudget(rows.Scan)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, budget)
	}

	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return budgets, nil
}

func (bi *BudgetRepoImpl) FindById(ctx context.Context, userId int, budgetId int) (*Budget, error) {
	query := `SELECT id, amount, period, start_date, end_date, category_id, active
				FROM budget WHERE user_id = ? AND id = ?`
	row := bi.db.QueryRowContext(ctx, query, userId, budgetId)
	budget, err := scanBudget(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return &budget, nil
}

func (bi *BudgetRepoImpl) Update(ctx context.Context, userId int, budget Budget) (bool, error) {
	query := `UPDATE budget SET
				  amount = ?,
				  period = ?,
				  start_date = ?,
				  end_date = ?,
				  category_id = ?,
				  active = ?
			  WHERE id = ? and user_id = ?`
	result, err := bi.db.ExecContext(ctx, query,
		budget.Amount.String(),
		string(budget.Period),
		budget.StartDate.Format(dateFormat),
		budget.EndDate.Format(dateFormat),
		categoryParam(budget.Scope),
		budget.Active,
		budget.ID,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
	}

	return rowsAffected == 1, nil
}

func (bi *BudgetRepoImpl) Delete(ctx context.Context, userId int, budgetId int) (bool, error) {
	query := "DELETE FROM budget WHERE id = ? and user_id = ?"
	result, err := bi.db.ExecContext(ctx, query, budgetId, userId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func categoryParam(scope BudgetScope) interface{} {
	if categoryId, ok := scope.CategoryId(); ok {
		return categoryId
	}
	return nil
}

func scanBudget(scan func(dest ...any) error) (Budget, error) {
	var budget Budget
	var amountString, periodString, startDateString, endDateString string
	var categoryId sql.NullInt64
	if err := scan(
		&budget.ID,
		&amountString,
		&periodString,
		&startDateString,
		&endDateString,
		&categoryId,
		&budget.Active,
	); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Errorf("could not scan budget: %v", err)
		}
		return Budget{}, err
	}

	amount, err := decimal.NewFromString(amountString)
	if err != nil {
		err := fmt.Errorf("could not parse budget amount %q: %w", amountString, err)
		log.Error(err)
		return Budget{}, err
	}
	budget.Amount = amount
	budget.Period = Period(periodString)

	startDate, err := time.Parse(dateFormat, startDateString)
	if err != nil {
		err := fmt.Errorf("could not parse start date: %w", err)
		log.Error(err)
		return Budget{}, err
	}
	budget.StartDate = startDate
	endDate, err := time.Parse(dateFormat, endDateString)
	if err != nil {
		err := fmt.Errorf("could not parse end date: %w", err)
		log.Error(err)
		return Budget{}, err
	}
	budget.EndDate = endDate

	if categoryId.Valid {
		budget.Scope = CategoryScope(int(categoryId.Int64))
	}
	return budget, nil
}
