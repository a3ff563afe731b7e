// Package conversation tracks per-message ingestion proposals server-side.
// Each proposal is an independent state machine keyed by the chat message
// that produced it.
package conversation

import (
	"errors"
	"time"

	"github.com/carson-networks/finance-agent-server/internal/extract"
	"github.com/carson-networks/finance-agent-server/internal/service"
)

var ErrNotFound = errors.New("conversation: proposal not found")

type State string

const (
	StateProposed  State = "proposed"
	StateConfirmed State = "confirmed"
	StateCancelled State = "cancelled"
)

type Kind string

const (
	KindAddTransaction Kind = "add_transaction"
	KindBulkUpload     Kind = "bulk_upload"
)

// Proposal is a pending ingestion awaiting a user decision. Exactly one of
// Transaction or Batch is set, per Kind. A proposal stays Proposed until
// acted on; there is no timeout. UserEmail is the owner; only the owner
// can see or decide the proposal.
type Proposal struct {
	MessageID   string
	UserEmail   string
	Kind        Kind
	State       State
	Transaction *service.TransactionCandidate
	Batch       []extract.Candidate
	CreatedAt   time.Time
	DecidedAt   time.Time
}
