package service

import (
	"errors"

	"github.com/gofrs/uuid/v5"
)

var (
	// ErrPersistenceUnavailable is returned after the transient-conflict
	// retry budget is exhausted.
	ErrPersistenceUnavailable = errors.New("service: persistence unavailable")

	// ErrNoValidTransactions is returned when validation filters out every
	// candidate in a bulk batch.
	ErrNoValidTransactions = errors.New("service: no valid transactions in batch")

	// ErrBulkSaveFailed is returned when a bulk batch ends with zero rows
	// saved.
	ErrBulkSaveFailed = errors.New("service: bulk save failed")

	// ErrExtractionPayload is returned when a bulk batch carries the
	// extractor's error shape instead of transaction data.
	ErrExtractionPayload = errors.New("service: batch carries extraction error")
)

// Rows mapped by the bulk path are filed under fixed account and category
// rows seeded by migration, and bulk ingestion never touches balances. The
// single path resolves both by name instead. The asymmetry is known and
// deliberate pending a product decision.
var (
	DefaultBulkAccountID  = uuid.FromStringOrNil("11111111-1111-1111-1111-111111111111")
	DefaultBulkCategoryID = uuid.FromStringOrNil("22222222-2222-2222-2222-222222222222")
)

// TransactionCandidate is a normalized single-transaction proposal as
// carried through the confirmation workflow.
type TransactionCandidate struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Account     string  `json:"account"`
	Date        string  `json:"date"`
	Type        string  `json:"type"`
}

// IsComplete reports whether the candidate can be committed without user
// confirmation.
func (c TransactionCandidate) IsComplete() bool {
	return c.Amount > 0 && c.Description != ""
}

// CommitResult is the outcome of a committed single ingestion.
type CommitResult struct {
	TransactionID string
	ReferenceID   string
}

// BulkResult is the outcome of a bulk ingestion.
type BulkResult struct {
	TransactionIDs []string
	Count          int
	FilteredCount  int
	FailedCount    int
	Message        string
}
