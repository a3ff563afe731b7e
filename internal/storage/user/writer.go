package user

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/um"
)

type Writer struct {
	tx bob.Tx
	Reader
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

// FindOrCreate resolves the user row for an authenticated email, creating it
// lazily on first write. The insert is conflict-do-nothing on the unique
// email constraint followed by a reselect, so concurrent first writes for the
// same email converge on one row. When the identity provider's profile name
// differs from the stored name, the stored name is refreshed.
func (w *Writer) FindOrCreate(ctx context.Context, email, name string) (*User, error) {
	existing, err := w.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	if err == nil {
		if name != "" && existing.Name != name {
			if err := w.updateName(ctx, existing.ID, name); err != nil {
				return nil, err
			}
			existing.Name = name
		}
		return existing, nil
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}

	q := psql.Insert(
		im.Into("users", "id", "name", "email", "phone", "created_at"),
		im.Values(psql.Arg(id, name, email, "", time.Now())),
		im.OnConflict("email").DoNothing(),
	)
	if _, err := bob.Exec(ctx, w.tx, q); err != nil {
		return nil, err
	}

	return w.FindByEmail(ctx, email)
}

func (w *Writer) updateName(ctx context.Context, id uuid.UUID, name string) error {
	q := psql.Update(
		um.Table("users"),
		um.SetCol("name").ToArg(name),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}
