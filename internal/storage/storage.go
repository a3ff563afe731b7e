package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gofrs/uuid/v5"
	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/finance-agent-server/internal/config"
	"github.com/carson-networks/finance-agent-server/internal/storage/transaction"
	"github.com/carson-networks/finance-agent-server/internal/storage/user"
)

type Storage struct {
	DB *sql.DB

	bobDB  bob.DB
	reader *Reader
}

func NewStorage(env *config.Config) (*Storage, error) {
	db, err := sql.Open("postgres", env.PostgresConnString())
	if err != nil {
		return nil, fmt.Errorf("storage: open postgres: %w", err)
	}

	bobDB := bob.NewDB(db)

	return &Storage{
		DB:     db,
		bobDB:  bobDB,
		reader: NewReader(bobDB),
	}, nil
}

// Read returns the shared read-only gateway backed by the connection pool.
func (s *Storage) Read() *Reader {
	return s.reader
}

// Write begins a database transaction and returns a Writer scoped to it.
// The caller owns Commit/Rollback.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.bobDB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	w := NewWriter(tx)
	return &w, nil
}

// ResolveUser finds or lazily creates the user row for an authenticated
// email in its own transaction.
func (s *Storage) ResolveUser(ctx context.Context, email, name string) (*user.User, error) {
	w, err := s.Write(ctx)
	if err != nil {
		return nil, err
	}

	owner, err := w.User.FindOrCreate(ctx, email, name)
	if err != nil {
		_ = w.Rollback()
		return nil, err
	}

	if err := w.Commit(); err != nil {
		return nil, err
	}
	return owner, nil
}

// ListTransactionsByReferenceIDs reads the user's rows for a set of
// reference ids, newest first, capped at limit.
func (s *Storage) ListTransactionsByReferenceIDs(ctx context.Context, userID uuid.UUID, referenceIDs []string, limit int) ([]*transaction.Transaction, error) {
	return s.reader.Transactions.ListByReferenceIDs(ctx, userID, referenceIDs, limit)
}

// BulkInsertTransactions inserts a batch in a single transaction with
// duplicate reference ids skipped. Returns the number of rows inserted,
// which may be lower than len(creates).
func (s *Storage) BulkInsertTransactions(ctx context.Context, creates []*transaction.TransactionCreate) (int64, error) {
	w, err := s.Write(ctx)
	if err != nil {
		return 0, err
	}

	inserted, err := w.Transaction.BulkInsert(ctx, creates)
	if err != nil {
		_ = w.Rollback()
		return 0, err
	}

	if err := w.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

// InsertTransactionSkipDuplicate inserts a single row in its own transaction,
// reporting false without error when the reference id already exists for the
// user.
func (s *Storage) InsertTransactionSkipDuplicate(ctx context.Context, create *transaction.TransactionCreate) (bool, error) {
	w, err := s.Write(ctx)
	if err != nil {
		return false, err
	}

	inserted, err := w.Transaction.InsertSkipDuplicate(ctx, create)
	if err != nil {
		_ = w.Rollback()
		return false, err
	}

	if err := w.Commit(); err != nil {
		return false, err
	}
	return inserted, nil
}
