package category

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Category is a per-user spending or income bucket. One row per
// (user, name); the kind mirrors the direction of the transactions filed
// under it.
type Category struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Name      string    `db:"name"`
	Kind      string    `db:"kind"`
	CreatedAt time.Time `db:"created_at"`
}

const (
	KindExpense = "expense"
	KindIncome  = "income"
)

var columns = []any{"id", "user_id", "name", "kind", "created_at"}
