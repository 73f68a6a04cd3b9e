package transaction

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const dateFormat = "2006-01-02"

// Repo is the transaction ledger. The budget engine only ever reads from
// it; Store exists so the ledger can be fed.
type Repo interface {
	Store(ctx context.Context, userId int, transaction Transaction) (int, error)
	// SumExpenses returns the sum of all expense transactions within the
	// closed interval [from, to]. A categoryId of 0 sums across all
	// categories. Zero matching rows yield a zero sum, not an error.
	SumExpenses(ctx context.Context, userId int, from, to time.Time, categoryId int) (decimal.Decimal, error)
	// FindExpensesSince returns all expense transactions on or after the
	// given date, ordered by date ascending.
	FindExpensesSince(ctx context.Context, userId int, since time.Time) ([]Transaction, error)
	FindRecent(ctx context.Context, userId int, limit int) ([]Transaction, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewTransactionRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, userId int, transaction Transaction) (int, error) {
	query := `INSERT INTO transactions (user_id, kind, amount, date, category_id, description)
				VALUES (?, ?, ?, ?, ?, ?)`

	var categoryParam interface{}
	if transaction.CategoryID != 0 {
		categoryParam = transaction.CategoryID
	}
	result, err := r.db.ExecContext(ctx, query,
		userId,
		string(transaction.Kind),
		transaction.Amount.String(),
		transaction.Date.Format(dateFormat),
		categoryParam,
		transaction.Description,
	)
	if err != nil {
		err := fmt.Errorf("could not store transaction: %w", err)
		log.Error(err)
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		err := fmt.Errorf("could not retrieve last insert id: %w", err)
		log.Error(err)
		return 0, err
	}
	return int(id), nil
}

func (r *RepoImpl) SumExpenses(ctx context.Context, userId int, from, to time.Time, categoryId int) (decimal.Decimal, error) {
	query := `SELECT amount FROM transactions
				WHERE user_id = ? AND kind = 'expense' AND date >= ? AND date <= ?`
	args := []interface{}{userId, from.Format(dateFormat), to.Format(dateFormat)}
	if categoryId != 0 {
		query += " AND category_id = ?"
		args = append(args, categoryId)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query expenses: %w", err)
		log.Error(err)
		return decimal.Zero, err
	}
	defer rows.Close()

	// Amounts are stored as decimal strings, so the sum is computed here
	// rather than with SQL SUM, which would go through floats.
	sum := decimal.Zero
	for rows.Next() {
		var amountString string
		if err := rows.Scan(&amountString); err != nil {
			err := fmt.Errorf("could not scan expense amount: %w", err)
			log.Error(err)
			return decimal.Zero, err
		}
		amount, err := decimal.NewFromString(amountString)
		if err != nil {
			err := fmt.Errorf("could not parse expense amount %q: %w", amountString, err)
			log.Error(err)
			return decimal.Zero, err
		}
		sum = sum.Add(amount)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return decimal.Zero, err
	}
	return sum, nil
}

func (r *RepoImpl) FindExpensesSince(ctx context.Context, userId int, since time.Time) ([]Transaction, error) {
	query := `SELECT id, kind, amount, date, category_id, description FROM transactions
				WHERE user_id = ? AND kind = 'expense' AND date >= ? ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query, userId, since.Format(dateFormat))
	if err != nil {
		err := fmt.Errorf("could not query expenses: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func (r *RepoImpl) FindRecent(ctx context.Context, userId int, limit int) ([]Transaction, error) {
	query := `SELECT id, kind, amount, date, category_id, description FROM transactions
				WHERE user_id = ? ORDER BY date DESC, id DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, userId, limit)
	if err != nil {
		err := fmt.Errorf("could not query transactions: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func scanTransactions(rows *sql.Rows) ([]Transaction, error) {
	var transactions []Transaction
	for rows.Next() {
		var transaction Transaction
		var kind, amountString, dateString string
		var categoryId sql.NullInt64
		if err := rows.Scan(
			&transaction.ID,
			&kind,
			&amountString,
			&dateString,
			&categoryId,
			&transaction.Description,
		); err != nil {
			err := fmt.Errorf("could not scan transaction: %w", err)
			log.Error(err)
			return nil, err
		}
		transaction.Kind = Kind(kind)
		amount, err := decimal.NewFromString(amountString)
		if err != nil {
			err := fmt.Errorf("could not parse transaction amount %q: %w", amountString, err)
			log.Error(err)
			return nil, err
		}
		transaction.Amount = amount
		date, err := time.Parse(dateFormat, dateString)
		if err != nil {
			err := fmt.Errorf("could not parse transaction date: %w", err)
			log.Error(err)
			return nil, err
		}
		transaction.Date = date
		if categoryId.Valid {
			transaction.CategoryID = int(categoryId.Int64)
		}
		transactions = append(transactions, transaction)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return transactions, nil
}
