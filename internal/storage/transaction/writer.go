package transaction

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/im"
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

var insertColumnNames = []string{
	"id", "user_id", "account_id", "category_id", "amount", "kind",
	"description", "reference_id", "occurred_at", "created_at",
}

// Insert stores a single transaction row and returns its id.
func (w *Writer) Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}

	q := psql.Insert(
		im.Into("transactions", insertColumnNames...),
		im.Values(insertArgs(id, create)),
	)
	if _, err := bob.Exec(ctx, w.tx, q); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// BulkInsert stores a batch in one statement, skipping rows whose
// (user_id, reference_id) already exists. Returns the number of rows
// actually inserted.
func (w *Writer) BulkInsert(ctx context.Context, creates []*TransactionCreate) (int64, error) {
	if len(creates) == 0 {
		return 0, nil
	}

	queryMods := make([]bob.Mod[*dialect.InsertQuery], 0, len(creates)+2)
	queryMods = append(queryMods, im.Into("transactions", insertColumnNames...))
	for _, create := range creates {
		id, err := uuid.NewV4()
		if err != nil {
			return 0, err
		}
		queryMods = append(queryMods, im.Values(insertArgs(id, create)))
	}
	queryMods = append(queryMods, im.OnConflict("user_id", "reference_id").DoNothing())

	result, err := bob.Exec(ctx, w.tx, psql.Insert(queryMods...))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// InsertSkipDuplicate stores a single row, reporting false without error
// when the user already has the reference id.
func (w *Writer) InsertSkipDuplicate(ctx context.Context, create *TransactionCreate) (bool, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return false, err
	}

	q := psql.Insert(
		im.Into("transactions", insertColumnNames...),
		im.Values(insertArgs(id, create)),
		im.OnConflict("user_id", "reference_id").DoNothing(),
	)
	result, err := bob.Exec(ctx, w.tx, q)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func insertArgs(id uuid.UUID, create *TransactionCreate) bob.Expression {
	return psql.Arg(
		id, create.UserID, create.AccountID, create.CategoryID, create.Amount,
		create.Kind, create.Description, create.ReferenceID, create.OccurredAt,
		time.Now(),
	)
}
