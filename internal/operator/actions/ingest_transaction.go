package actions

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-agent-server/internal/storage"
	"github.com/carson-networks/finance-agent-server/internal/storage/account"
	"github.com/carson-networks/finance-agent-server/internal/storage/category"
	"github.com/carson-networks/finance-agent-server/internal/storage/transaction"
	"github.com/carson-networks/finance-agent-server/internal/storage/user"
)

// The per-entity writer surfaces the action touches; satisfied by the
// storage writers.
type userWriter interface {
	FindOrCreate(ctx context.Context, email, name string) (*user.User, error)
}

type accountWriter interface {
	FindOrCreate(ctx context.Context, userID uuid.UUID, institution string) (*account.Account, error)
	AdjustBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error
}

type categoryWriter interface {
	FindOrCreate(ctx context.Context, userID uuid.UUID, name, kind string) (*category.Category, error)
}

type transactionWriter interface {
	Insert(ctx context.Context, create *transaction.TransactionCreate) (uuid.UUID, error)
}

// IngestTransaction resolves the owning user, account, and category by name
// (creating any that are missing), inserts the transaction row, and applies
// the signed amount to the account balance. Runs inside one database
// transaction via the operator.
type IngestTransaction struct {
	Email       string
	UserName    string
	Amount      decimal.Decimal
	Description string
	Category    string
	Institution string
	Kind        transaction.Kind
	Date        time.Time

	// Result holds the inserted row's identifiers after Perform succeeds.
	Result IngestResult
}

type IngestResult struct {
	TransactionID string
	ReferenceID   string
}

func (a *IngestTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	return a.run(ctx, writer.User, writer.Account, writer.Category, writer.Transaction)
}

func (a *IngestTransaction) run(ctx context.Context, users userWriter, accounts accountWriter, categories categoryWriter, transactions transactionWriter) error {
	owner, err := users.FindOrCreate(ctx, a.Email, a.UserName)
	if err != nil {
		return fmt.Errorf("resolve user: %w", err)
	}

	acc, err := accounts.FindOrCreate(ctx, owner.ID, a.Institution)
	if err != nil {
		return fmt.Errorf("resolve account: %w", err)
	}

	kind := category.KindExpense
	if a.Kind == transaction.KindIncome {
		kind = category.KindIncome
	}
	cat, err := categories.FindOrCreate(ctx, owner.ID, a.Category, kind)
	if err != nil {
		return fmt.Errorf("resolve category: %w", err)
	}

	referenceID := fmt.Sprintf("TXN-%d", time.Now().UnixMilli())
	id, err := transactions.Insert(ctx, &transaction.TransactionCreate{
		UserID:      owner.ID,
		AccountID:   acc.ID,
		CategoryID:  cat.ID,
		Amount:      a.Amount,
		Kind:        a.Kind,
		Description: a.Description,
		ReferenceID: referenceID,
		OccurredAt:  a.Date,
	})
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	delta := a.Amount
	if a.Kind == transaction.KindExpense {
		delta = delta.Neg()
	}
	if err := accounts.AdjustBalance(ctx, acc.ID, delta); err != nil {
		return fmt.Errorf("adjust balance: %w", err)
	}

	a.Result = IngestResult{
		TransactionID: id.String(),
		ReferenceID:   referenceID,
	}
	return nil
}
