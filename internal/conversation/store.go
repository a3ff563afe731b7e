package conversation

import (
	"sync"
	"time"
)

// Store is an in-memory proposal registry. Proposals are scoped to the
// owner recorded on them and do not survive a process restart.
type Store struct {
	mu        sync.RWMutex
	proposals map[string]*Proposal
}

func NewStore() *Store {
	return &Store{
		proposals: make(map[string]*Proposal),
	}
}

// Message ids are client-supplied, so proposals are keyed by owner and
// message id together. One user's proposal is invisible to every other
// user, including through Put.
func proposalKey(ownerEmail, messageID string) string {
	return ownerEmail + "\x00" + messageID
}

// Put registers a proposal in the Proposed state, replacing any previous
// proposal the same owner has for the same message.
func (s *Store) Put(proposal *Proposal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	proposal.State = StateProposed
	proposal.CreatedAt = time.Now()
	s.proposals[proposalKey(proposal.UserEmail, proposal.MessageID)] = proposal
}

// Get returns a copy of the owner's proposal for a message id. Another
// user's proposal is reported as not found.
func (s *Store) Get(ownerEmail, messageID string) (*Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	proposal, ok := s.proposals[proposalKey(ownerEmail, messageID)]
	if !ok {
		return nil, ErrNotFound
	}

	copied := *proposal
	return &copied, nil
}

// Decide records the owner's decision. Re-deciding an already decided
// proposal is permitted and simply overwrites the previous decision, so
// double-confirmation remains a duplicate-submission hazard for callers.
func (s *Store) Decide(ownerEmail, messageID string, state State) (*Proposal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	proposal, ok := s.proposals[proposalKey(ownerEmail, messageID)]
	if !ok {
		return nil, ErrNotFound
	}

	proposal.State = state
	proposal.DecidedAt = time.Now()

	copied := *proposal
	return &copied, nil
}
