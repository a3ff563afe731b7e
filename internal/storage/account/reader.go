package account

import (
	"context"

	"github.com/gofrs/uuid/v5"
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

// FindByInstitution looks up the user's account for an institution.
// Returns sql.ErrNoRows when the user has no account there yet.
func (r *Reader) FindByInstitution(ctx context.Context, userID uuid.UUID, institution string) (*Account, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("accounts"),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("institution").EQ(psql.Arg(institution))),
	)

	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[Account]())
	if err != nil {
		return nil, err
	}
	return &row, nil
}
