package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/carson-networks/finance-agent-server/internal/storage"
	"github.com/carson-networks/finance-agent-server/internal/storage/transaction"
)

const defaultListDays = 30

// TransactionService handles transaction read paths.
type TransactionService struct {
	storage *storage.Storage
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage) *TransactionService {
	return &TransactionService{storage: store}
}

// ListForUser returns the caller's transactions newest first. A caller with
// no user row yet simply has no transactions.
func (s *TransactionService) ListForUser(ctx context.Context, email string, options ListOptions) ([]ListedTransaction, error) {
	owner, err := s.storage.Read().Users.FindByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return []ListedTransaction{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve user: %w", err)
	}

	days := options.Days
	if days <= 0 {
		days = defaultListDays
	}

	filter := &transaction.ListFilter{
		Search:   options.Search,
		Category: selector(options.Category),
		Account:  selector(options.Account),
		Since:    time.Now().AddDate(0, 0, -days),
	}
	if kind := selector(options.Type); kind != "" {
		filter.Kind = transaction.Kind(strings.ToUpper(kind))
	}

	rows, err := s.storage.Read().Transactions.ListForUser(ctx, owner.ID, filter)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	listed := make([]ListedTransaction, len(rows))
	for i, row := range rows {
		amount := row.Amount.InexactFloat64()
		if row.Kind == transaction.KindExpense {
			amount = -amount
		}
		listed[i] = ListedTransaction{
			ID:          row.ID.String(),
			Date:        row.OccurredAt.Format("2006-01-02"),
			Description: row.Description,
			Category:    row.CategoryName,
			Amount:      amount,
			Account:     row.AccountName,
			ReferenceID: row.ReferenceID,
		}
	}
	return listed, nil
}

// FilterOptionsForUser returns the distinct category and account names the
// caller has transacted against.
func (s *TransactionService) FilterOptionsForUser(ctx context.Context, email string) (*FilterOptions, error) {
	owner, err := s.storage.Read().Users.FindByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return &FilterOptions{Categories: []string{}, Accounts: []string{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve user: %w", err)
	}

	categories, err := s.storage.Read().Transactions.DistinctCategoryNames(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("list category names: %w", err)
	}
	accounts, err := s.storage.Read().Transactions.DistinctAccountNames(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("list account names: %w", err)
	}

	return &FilterOptions{
		Categories: categories,
		Accounts:   accounts,
	}, nil
}

func selector(value string) string {
	if value == "all" {
		return ""
	}
	return value
}
