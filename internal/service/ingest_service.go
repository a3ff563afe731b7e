package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-agent-server/internal/auth"
	"github.com/carson-networks/finance-agent-server/internal/extract"
	"github.com/carson-networks/finance-agent-server/internal/operator/actions"
	"github.com/carson-networks/finance-agent-server/internal/storage"
	"github.com/carson-networks/finance-agent-server/internal/storage/transaction"
	"github.com/carson-networks/finance-agent-server/internal/storage/user"
)

const (
	descriptionPlaceholder = "Manual transaction"
	maxResolveAttempts     = 3
)

// actionProcessor runs an action inside one database transaction; satisfied
// by the operator delegator.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// bulkStore is the storage surface the bulk path needs; satisfied by
// *storage.Storage.
type bulkStore interface {
	ResolveUser(ctx context.Context, email, name string) (*user.User, error)
	BulkInsertTransactions(ctx context.Context, creates []*transaction.TransactionCreate) (int64, error)
	InsertTransactionSkipDuplicate(ctx context.Context, create *transaction.TransactionCreate) (bool, error)
	ListTransactionsByReferenceIDs(ctx context.Context, userID uuid.UUID, referenceIDs []string, limit int) ([]*transaction.Transaction, error)
}

// IngestService owns both transaction ingestion entry points: the single
// path (normalize, confirm, commit atomically through the operator) and the
// bulk path (validate, map, duplicate-skipping batch insert).
type IngestService struct {
	store    bulkStore
	operator actionProcessor
	logger   *logrus.Logger
	sleep    func(time.Duration)
}

func NewIngestService(store bulkStore, processor actionProcessor, logger *logrus.Logger) *IngestService {
	return &IngestService{
		store:    store,
		operator: processor,
		logger:   logger,
		sleep:    time.Sleep,
	}
}

// NormalizeCandidate fills the defaults for missing fields.
func NormalizeCandidate(c TransactionCandidate) TransactionCandidate {
	if c.Description == "" {
		c.Description = descriptionPlaceholder
	}
	if c.Category == "" {
		c.Category = "Others"
	}
	if c.Account == "" {
		c.Account = "Unknown"
	}
	if c.Date == "" {
		c.Date = time.Now().Format("2006-01-02")
	}
	if c.Type == "" {
		c.Type = string(transaction.KindExpense)
	}
	return c
}

// Commit persists a confirmed (or already complete) candidate. User,
// account, and category resolution, the row insert, and the balance update
// run inside one database transaction.
func (s *IngestService) Commit(ctx context.Context, identity *auth.Identity, candidate TransactionCandidate) (*CommitResult, error) {
	candidate = NormalizeCandidate(candidate)

	kind := transaction.KindExpense
	if strings.EqualFold(candidate.Type, string(transaction.KindIncome)) {
		kind = transaction.KindIncome
	}

	action := &actions.IngestTransaction{
		Email:       identity.Email,
		UserName:    identity.Name,
		Amount:      decimal.NewFromFloat(candidate.Amount),
		Description: candidate.Description,
		Category:    candidate.Category,
		Institution: candidate.Account,
		Kind:        kind,
		Date:        parseDateLenient(candidate.Date),
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return &CommitResult{
		TransactionID: action.Result.TransactionID,
		ReferenceID:   action.Result.ReferenceID,
	}, nil
}

// BulkIngest validates, maps, and saves an extracted candidate batch for
// the authenticated user. Account and category are fixed rows and balances
// are untouched on this path.
func (s *IngestService) BulkIngest(ctx context.Context, identity *auth.Identity, candidates []extract.Candidate) (*BulkResult, error) {
	if extract.IsErrorPayload(candidates) {
		return nil, fmt.Errorf("%w: %s", ErrExtractionPayload, candidates[0].Error)
	}

	owner, err := s.resolveUserWithRetry(ctx, identity)
	if err != nil {
		return nil, err
	}

	valid := make([]extract.Candidate, 0, len(candidates))
	for _, candidate := range candidates {
		if isValidCandidate(candidate) {
			valid = append(valid, candidate)
		}
	}
	filtered := len(candidates) - len(valid)
	if len(valid) == 0 {
		return nil, ErrNoValidTransactions
	}

	creates := make([]*transaction.TransactionCreate, len(valid))
	referenceIDs := make([]string, len(valid))
	for i, candidate := range valid {
		creates[i] = mapCandidate(owner.ID, candidate)
		referenceIDs[i] = creates[i].ReferenceID
	}

	_, failed, err := s.insertBatch(ctx, creates)
	if err != nil {
		return nil, err
	}

	// Reread by reference id rather than trusting the insert count, so a
	// resubmitted batch reports the rows that already exist instead of
	// failing as empty.
	saved, err := s.store.ListTransactionsByReferenceIDs(ctx, owner.ID, referenceIDs, len(creates))
	if err != nil {
		return nil, fmt.Errorf("reread saved transactions: %w", err)
	}
	if len(saved) == 0 {
		return nil, ErrBulkSaveFailed
	}

	ids := make([]string, len(saved))
	for i, row := range saved {
		ids[i] = row.ID.String()
	}

	return &BulkResult{
		TransactionIDs: ids,
		Count:          len(saved),
		FilteredCount:  filtered,
		FailedCount:    failed,
		Message:        bulkSummary(len(saved), filtered, failed),
	}, nil
}

// insertBatch tries one duplicate-skipping bulk statement first, then falls
// back to row-at-a-time inserts that continue past individual failures.
func (s *IngestService) insertBatch(ctx context.Context, creates []*transaction.TransactionCreate) (inserted, failed int, err error) {
	count, err := s.store.BulkInsertTransactions(ctx, creates)
	if err == nil {
		return int(count), 0, nil
	}
	s.logger.WithError(err).Warn("Ingest.BulkInsert.FallingBackToRows")

	for _, create := range creates {
		ok, rowErr := s.store.InsertTransactionSkipDuplicate(ctx, create)
		if rowErr != nil {
			s.logger.WithError(rowErr).WithField("referenceId", create.ReferenceID).
				Warn("Ingest.RowInsert.Failed")
			failed++
			continue
		}
		if ok {
			inserted++
		}
	}
	return inserted, failed, nil
}

// resolveUserWithRetry retries the transient prepared-statement conflict
// class with linear backoff (1s, 2s, 3s) before giving up.
func (s *IngestService) resolveUserWithRetry(ctx context.Context, identity *auth.Identity) (*user.User, error) {
	var lastErr error
	for attempt := 1; attempt <= maxResolveAttempts; attempt++ {
		owner, err := s.store.ResolveUser(ctx, identity.Email, identity.Name)
		if err == nil {
			return owner, nil
		}
		if !storage.IsTransientConflict(err) {
			return nil, fmt.Errorf("resolve user: %w", err)
		}

		lastErr = err
		s.logger.WithError(err).WithField("attempt", attempt).Warn("Ingest.ResolveUser.TransientConflict")
		if attempt < maxResolveAttempts {
			s.sleep(time.Duration(attempt) * time.Second)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPersistenceUnavailable, lastErr)
}

// isValidCandidate requires the string fields. Amount is already numeric
// once the candidate decodes, so it needs no check here.
func isValidCandidate(c extract.Candidate) bool {
	return c.Date != "" && c.TransactionID != "" && c.Name != "" && c.Type != ""
}

func mapCandidate(userID uuid.UUID, c extract.Candidate) *transaction.TransactionCreate {
	kind := transaction.KindExpense
	if strings.EqualFold(c.Type, "credit") {
		kind = transaction.KindIncome
	}

	return &transaction.TransactionCreate{
		UserID:      userID,
		AccountID:   DefaultBulkAccountID,
		CategoryID:  DefaultBulkCategoryID,
		Amount:      decimal.NewFromFloat(c.Amount).Round(2),
		Kind:        kind,
		Description: strings.TrimSpace(c.Name),
		ReferenceID: strings.TrimSpace(c.TransactionID),
		OccurredAt:  parseDateLenient(c.Date),
	}
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"02/01/2006",
	"01/02/2006",
	"02-01-2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// parseDateLenient coerces unparseable dates to now instead of rejecting
// the row.
func parseDateLenient(value string) time.Time {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed
		}
	}
	return time.Now()
}

func bulkSummary(saved, filtered, failed int) string {
	message := fmt.Sprintf("Successfully saved %d transactions to your account.", saved)
	if filtered > 0 {
		message += fmt.Sprintf(" %d invalid rows were skipped.", filtered)
	}
	if failed > 0 {
		message += fmt.Sprintf(" %d rows failed to save.", failed)
	}
	return message
}
