package category

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

type Writer struct {
	tx bob.Tx
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{tx: tx}
}

// FindOrCreate resolves the user's category by name, creating it when
// absent. Creation is conflict-do-nothing on the (user_id, name) unique
// constraint followed by a reselect.
func (w *Writer) FindOrCreate(ctx context.Context, userID uuid.UUID, name, kind string) (*Category, error) {
	existing, err := w.findByName(ctx, userID, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}

	q := psql.Insert(
		im.Into("categories", "id", "user_id", "name", "kind", "created_at"),
		im.Values(psql.Arg(id, userID, name, kind, time.Now())),
		im.OnConflict("user_id", "name").DoNothing(),
	)
	if _, err := bob.Exec(ctx, w.tx, q); err != nil {
		return nil, err
	}

	return w.findByName(ctx, userID, name)
}

func (w *Writer) findByName(ctx context.Context, userID uuid.UUID, name string) (*Category, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("categories"),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("name").EQ(psql.Arg(name))),
	)

	row, err := bob.One(ctx, w.tx, q, scan.StructMapper[Category]())
	if err != nil {
		return nil, err
	}
	return &row, nil
}
