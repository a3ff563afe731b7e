package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/finance-agent-server/internal/storage/account"
	"github.com/carson-networks/finance-agent-server/internal/storage/category"
	"github.com/carson-networks/finance-agent-server/internal/storage/transaction"
	"github.com/carson-networks/finance-agent-server/internal/storage/user"
)

type Writer struct {
	tx          bob.Tx
	User        *user.Writer
	Account     *account.Writer
	Category    *category.Writer
	Transaction *transaction.Writer
}

func NewWriter(tx bob.Tx) Writer {
	return Writer{
		tx:          tx,
		User:        user.NewWriter(tx),
		Account:     account.NewWriter(tx),
		Category:    category.NewWriter(tx),
		Transaction: transaction.NewWriter(tx),
	}
}

func (w *Writer) Commit() error {
	return w.tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback(context.Background())
}
