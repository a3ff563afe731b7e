package agent

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-agent-server/internal/conversation"
	"github.com/carson-networks/finance-agent-server/internal/service"
)

const messageTransactionConfirmed = "Transaction confirmed. It has been saved to your account and is available in your transaction history."

// ConfirmTransactionBody is the request body for confirming a pending
// single transaction. The proposal is looked up by message id when given;
// an inline transaction is accepted as a fallback for clients that do not
// track message ids.
type ConfirmTransactionBody struct {
	MessageID   string                        `json:"messageId,omitempty" doc:"Chat message id of the pending proposal"`
	Transaction *service.TransactionCandidate `json:"transaction,omitempty" doc:"Inline candidate when no proposal is tracked"`
}

// ConfirmTransactionInput is the Huma input for confirming a transaction.
type ConfirmTransactionInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	Body          ConfirmTransactionBody
}

// ConfirmTransactionResponseBody is the response body for confirming a
// transaction.
type ConfirmTransactionResponseBody struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transactionId"`
	Message       string `json:"message"`
}

// ConfirmTransactionOutput is the Huma output for confirming a transaction.
type ConfirmTransactionOutput struct {
	Body ConfirmTransactionResponseBody
}

// ConfirmTransactionHandler handles POST /v1/agent/confirm-transaction.
type ConfirmTransactionHandler struct {
	Auth      identityResolver
	Ingester  transactionIngester
	Proposals proposalRegistry
}

// NewConfirmTransactionHandler creates a new ConfirmTransactionHandler.
func NewConfirmTransactionHandler(resolver identityResolver, ingester transactionIngester, proposals proposalRegistry) *ConfirmTransactionHandler {
	return &ConfirmTransactionHandler{
		Auth:      resolver,
		Ingester:  ingester,
		Proposals: proposals,
	}
}

// Register registers the confirm transaction endpoint with the Huma API.
func (h *ConfirmTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "confirm-transaction",
		Method:      http.MethodPost,
		Path:        "/v1/agent/confirm-transaction",
		Summary:     "Confirm transaction",
		Description: "Commits a previously proposed single transaction after user approval.",
		Tags:        []string{"Agent"},
	}, h.handle)
}

func (h *ConfirmTransactionHandler) handle(ctx context.Context, input *ConfirmTransactionInput) (*ConfirmTransactionOutput, error) {
	identity, err := authorize(ctx, h.Auth, input.Authorization)
	if err != nil {
		return nil, err
	}

	candidate := input.Body.Transaction
	if input.Body.MessageID != "" {
		proposal, err := h.Proposals.Decide(identity.Email, input.Body.MessageID, conversation.StateConfirmed)
		if errors.Is(err, conversation.ErrNotFound) {
			return nil, huma.NewError(http.StatusNotFound, "No pending transaction for this message", err)
		}
		if err != nil {
			return nil, huma.NewError(http.StatusInternalServerError, "Failed to confirm transaction", err)
		}
		candidate = proposal.Transaction
	}
	if candidate == nil {
		return nil, huma.NewError(http.StatusBadRequest, "No transaction to confirm")
	}

	result, err := h.Ingester.Commit(ctx, identity, *candidate)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "Failed to save transaction", err)
	}

	return &ConfirmTransactionOutput{Body: ConfirmTransactionResponseBody{
		Success:       true,
		TransactionID: result.TransactionID,
		Message:       messageTransactionConfirmed,
	}}, nil
}
