package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

type Transaction struct {
	ID     int
	Kind   Kind
	Amount decimal.Decimal
	Date   time.Time
	// CategoryID is 0 for uncategorized transactions.
	CategoryID  int
	Description string
}
