package storage

import (
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/finance-agent-server/internal/storage/account"
	"github.com/carson-networks/finance-agent-server/internal/storage/transaction"
	"github.com/carson-networks/finance-agent-server/internal/storage/user"
)

type Reader struct {
	Users        *user.Reader
	Accounts     *account.Reader
	Transactions *transaction.Reader
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{
		Users:        user.NewReader(exec),
		Accounts:     account.NewReader(exec),
		Transactions: transaction.NewReader(exec),
	}
}
