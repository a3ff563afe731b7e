package user

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// User represents an authenticated owner of accounts, categories, and
// transactions. Rows are created lazily on the first authenticated write.
type User struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Phone     string    `db:"phone"`
	CreatedAt time.Time `db:"created_at"`
}

var columns = []any{"id", "name", "email", "phone", "created_at"}
