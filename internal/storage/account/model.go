package account

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Account represents a financial account owned by a user. Accounts are
// resolved by institution name, one row per (user, institution).
type Account struct {
	ID          uuid.UUID       `db:"id"`
	UserID      uuid.UUID       `db:"user_id"`
	Name        string          `db:"name"`
	Institution string          `db:"institution"`
	Type        AccountType     `db:"type"`
	Balance     decimal.Decimal `db:"balance"`
	CreatedAt   time.Time       `db:"created_at"`
}

type AccountType string

const (
	AccountTypeChecking AccountType = "checking"
	AccountTypeSavings  AccountType = "savings"
)

var columns = []any{"id", "user_id", "name", "institution", "type", "balance", "created_at"}
