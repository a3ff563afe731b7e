package transaction

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Transaction is a single ledger row. Amounts are stored unsigned; the kind
// carries the direction.
type Transaction struct {
	ID          uuid.UUID       `db:"id"`
	UserID      uuid.UUID       `db:"user_id"`
	AccountID   uuid.UUID       `db:"account_id"`
	CategoryID  uuid.UUID       `db:"category_id"`
	Amount      decimal.Decimal `db:"amount"`
	Kind        Kind            `db:"kind"`
	Description string          `db:"description"`
	ReferenceID string          `db:"reference_id"`
	OccurredAt  time.Time       `db:"occurred_at"`
	CreatedAt   time.Time       `db:"created_at"`
}

type Kind string

const (
	KindIncome  Kind = "INCOME"
	KindExpense Kind = "EXPENSE"
)

// TransactionCreate is the input for inserting a new transaction.
type TransactionCreate struct {
	UserID      uuid.UUID
	AccountID   uuid.UUID
	CategoryID  uuid.UUID
	Amount      decimal.Decimal
	Kind        Kind
	Description string
	ReferenceID string
	OccurredAt  time.Time
}

// ListFilter narrows ListForUser results. Zero values mean "no filter";
// Since bounds the occurred_at date from below.
type ListFilter struct {
	Search   string
	Category string
	Account  string
	Kind     Kind
	Since    time.Time
}

// ListedTransaction is a transaction row joined with its account and
// category names for display.
type ListedTransaction struct {
	ID           uuid.UUID       `db:"id"`
	Amount       decimal.Decimal `db:"amount"`
	Kind         Kind            `db:"kind"`
	Description  string          `db:"description"`
	ReferenceID  string          `db:"reference_id"`
	OccurredAt   time.Time       `db:"occurred_at"`
	AccountName  string          `db:"account_name"`
	CategoryName string          `db:"category_name"`
}

var columns = []any{
	"id", "user_id", "account_id", "category_id", "amount", "kind",
	"description", "reference_id", "occurred_at", "created_at",
}
