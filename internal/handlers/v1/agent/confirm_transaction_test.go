package agent

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-agent-server/internal/conversation"
	"github.com/carson-networks/finance-agent-server/internal/service"
)

func newConfirmTransactionAPI(t *testing.T, resolver identityResolver, ingester transactionIngester, proposals proposalRegistry) humatest.TestAPI {
	_, api := humatest.New(t)
	NewConfirmTransactionHandler(resolver, ingester, proposals).Register(api)
	return api
}

func TestHTTP_ConfirmTransaction_FromProposal(t *testing.T) {
	store := conversation.NewStore()
	store.Put(&conversation.Proposal{
		MessageID:   "msg-1",
		UserEmail:   "jo@example.com",
		Kind:        conversation.KindAddTransaction,
		Transaction: &service.TransactionCandidate{Amount: 200, Description: "lunch"},
	})

	mockSvc := new(mockIngester)
	mockSvc.On("Commit", mock.Anything, mock.Anything, mock.MatchedBy(func(c service.TransactionCandidate) bool {
		return c.Amount == 200 && c.Description == "lunch"
	})).Return(&service.CommitResult{TransactionID: "txn-id"}, nil)

	api := newConfirmTransactionAPI(t, allowAnyToken(), mockSvc, store)
	resp := api.Post("/v1/agent/confirm-transaction", "Authorization: Bearer token", ConfirmTransactionBody{
		MessageID: "msg-1",
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	var body ConfirmTransactionResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, "txn-id", body.TransactionID)
	mockSvc.AssertExpectations(t)

	proposal, err := store.Get("jo@example.com", "msg-1")
	require.NoError(t, err)
	assert.Equal(t, conversation.StateConfirmed, proposal.State)
}

func TestHTTP_ConfirmTransaction_Inline(t *testing.T) {
	mockSvc := new(mockIngester)
	mockSvc.On("Commit", mock.Anything, mock.Anything, mock.Anything).
		Return(&service.CommitResult{TransactionID: "txn-id"}, nil)

	api := newConfirmTransactionAPI(t, allowAnyToken(), mockSvc, conversation.NewStore())
	resp := api.Post("/v1/agent/confirm-transaction", "Authorization: Bearer token", ConfirmTransactionBody{
		Transaction: &service.TransactionCandidate{Amount: 50, Description: "coffee"},
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_ConfirmTransaction_DoubleConfirmResubmits(t *testing.T) {
	store := conversation.NewStore()
	store.Put(&conversation.Proposal{
		MessageID:   "msg-1",
		UserEmail:   "jo@example.com",
		Kind:        conversation.KindAddTransaction,
		Transaction: &service.TransactionCandidate{Amount: 200, Description: "lunch"},
	})

	mockSvc := new(mockIngester)
	mockSvc.On("Commit", mock.Anything, mock.Anything, mock.Anything).
		Return(&service.CommitResult{TransactionID: "txn-id"}, nil).Twice()

	api := newConfirmTransactionAPI(t, allowAnyToken(), mockSvc, store)
	first := api.Post("/v1/agent/confirm-transaction", "Authorization: Bearer token", ConfirmTransactionBody{MessageID: "msg-1"})
	second := api.Post("/v1/agent/confirm-transaction", "Authorization: Bearer token", ConfirmTransactionBody{MessageID: "msg-1"})

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_ConfirmTransaction_OtherUsersProposal(t *testing.T) {
	store := conversation.NewStore()
	store.Put(&conversation.Proposal{
		MessageID:   "msg-1",
		UserEmail:   "amy@example.com",
		Kind:        conversation.KindAddTransaction,
		Transaction: &service.TransactionCandidate{Amount: 200, Description: "lunch"},
	})

	mockSvc := new(mockIngester)

	// The caller authenticates as jo@example.com and must not be able to
	// confirm amy's pending proposal.
	api := newConfirmTransactionAPI(t, allowAnyToken(), mockSvc, store)
	resp := api.Post("/v1/agent/confirm-transaction", "Authorization: Bearer token", ConfirmTransactionBody{
		MessageID: "msg-1",
	})

	assert.Equal(t, http.StatusNotFound, resp.Code)
	mockSvc.AssertNotCalled(t, "Commit")

	original, err := store.Get("amy@example.com", "msg-1")
	require.NoError(t, err)
	assert.Equal(t, conversation.StateProposed, original.State)
}

func TestHTTP_ConfirmTransaction_UnknownProposal(t *testing.T) {
	mockSvc := new(mockIngester)

	api := newConfirmTransactionAPI(t, allowAnyToken(), mockSvc, conversation.NewStore())
	resp := api.Post("/v1/agent/confirm-transaction", "Authorization: Bearer token", ConfirmTransactionBody{
		MessageID: "missing",
	})

	assert.Equal(t, http.StatusNotFound, resp.Code)
	mockSvc.AssertNotCalled(t, "Commit")
}

func TestHTTP_ConfirmTransaction_NothingToConfirm(t *testing.T) {
	mockSvc := new(mockIngester)

	api := newConfirmTransactionAPI(t, allowAnyToken(), mockSvc, conversation.NewStore())
	resp := api.Post("/v1/agent/confirm-transaction", "Authorization: Bearer token", ConfirmTransactionBody{})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockSvc.AssertNotCalled(t, "Commit")
}

func TestHTTP_CancelProposal(t *testing.T) {
	store := conversation.NewStore()
	store.Put(&conversation.Proposal{
		MessageID:   "msg-1",
		UserEmail:   "jo@example.com",
		Kind:        conversation.KindAddTransaction,
		Transaction: &service.TransactionCandidate{Amount: 200, Description: "lunch"},
	})

	_, api := humatest.New(t)
	NewCancelProposalHandler(allowAnyToken(), store).Register(api)

	resp := api.Post("/v1/agent/cancel-proposal", "Authorization: Bearer token", CancelProposalBody{
		MessageID: "msg-1",
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	proposal, err := store.Get("jo@example.com", "msg-1")
	require.NoError(t, err)
	assert.Equal(t, conversation.StateCancelled, proposal.State)
}

func TestHTTP_CancelProposal_OtherUsersProposal(t *testing.T) {
	store := conversation.NewStore()
	store.Put(&conversation.Proposal{
		MessageID:   "msg-1",
		UserEmail:   "amy@example.com",
		Kind:        conversation.KindAddTransaction,
		Transaction: &service.TransactionCandidate{Amount: 200, Description: "lunch"},
	})

	_, api := humatest.New(t)
	NewCancelProposalHandler(allowAnyToken(), store).Register(api)

	resp := api.Post("/v1/agent/cancel-proposal", "Authorization: Bearer token", CancelProposalBody{
		MessageID: "msg-1",
	})

	assert.Equal(t, http.StatusNotFound, resp.Code)
	original, err := store.Get("amy@example.com", "msg-1")
	require.NoError(t, err)
	assert.Equal(t, conversation.StateProposed, original.State)
}
