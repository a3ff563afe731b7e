package account

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
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

// FindOrCreate resolves the user's account for an institution, creating it
// with a zero balance when absent. The account display name is the
// institution followed by " Account"; cash accounts are savings, everything
// else checking. Creation is conflict-do-nothing on the
// (user_id, institution) unique constraint followed by a reselect.
func (w *Writer) FindOrCreate(ctx context.Context, userID uuid.UUID, institution string) (*Account, error) {
	existing, err := w.FindByInstitution(ctx, userID, institution)
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
		im.Into("accounts", "id", "user_id", "name", "institution", "type", "balance", "created_at"),
		im.Values(psql.Arg(id, userID, institution+" Account", institution, typeForInstitution(institution), decimal.Zero, time.Now())),
		im.OnConflict("user_id", "institution").DoNothing(),
	)
	if _, err := bob.Exec(ctx, w.tx, q); err != nil {
		return nil, err
	}

	return w.FindByInstitution(ctx, userID, institution)
}

// typeForInstitution maps an institution to the account type created for
// it. Cash is a savings account, every bank is checking.
func typeForInstitution(institution string) AccountType {
	if institution == "Cash" {
		return AccountTypeSavings
	}
	return AccountTypeChecking
}

// AdjustBalance applies a signed delta to the account balance.
func (w *Writer) AdjustBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	q := psql.Update(
		um.Table("accounts"),
		um.SetCol("balance").To(psql.Raw("balance + ?", delta)),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}
