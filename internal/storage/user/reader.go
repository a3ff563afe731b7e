package user

import (
	"context"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// FindByEmail retrieves a user by exact (case-sensitive) email match.
// Returns sql.ErrNoRows when no user exists for the email.
func (r *Reader) FindByEmail(ctx context.Context, email string) (*User, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("users"),
		sm.Where(psql.Quote("email").EQ(psql.Arg(email))),
	)

	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[User]())
	if err != nil {
		return nil, err
	}
	return &row, nil
}
