package agent

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-agent-server/internal/auth"
	"github.com/carson-networks/finance-agent-server/internal/conversation"
	"github.com/carson-networks/finance-agent-server/internal/logging"
	"github.com/carson-networks/finance-agent-server/internal/service"
)

const (
	messageTransactionSaved = "Transaction added successfully. It has been processed and saved to your account."
	messageNeedsReview      = "Transaction details extracted. Please review and confirm if everything looks correct."
	messageReceiptReview    = "Receipt processed. Please review the extracted details and confirm if they are correct."
)

// AddTransactionBody is the request body for single-transaction ingestion.
type AddTransactionBody struct {
	Data      service.TransactionCandidate `json:"data" doc:"Extracted transaction fields"`
	HasImage  bool                         `json:"hasImage,omitempty" doc:"Whether the transaction came from a receipt image"`
	MessageID string                       `json:"messageId,omitempty" doc:"Chat message id used to track the proposal"`
}

// AddTransactionInput is the Huma input for single-transaction ingestion.
type AddTransactionInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	Body          AddTransactionBody
}

// AddTransactionResponseBody is the response body for single-transaction
// ingestion.
type AddTransactionResponseBody struct {
	Success              bool                         `json:"success"`
	RequiresConfirmation bool                         `json:"requiresConfirmation"`
	Transaction          service.TransactionCandidate `json:"transaction"`
	TransactionID        string                       `json:"transactionId,omitempty"`
	Message              string                       `json:"message"`
}

// AddTransactionOutput is the Huma output for single-transaction ingestion.
type AddTransactionOutput struct {
	Body AddTransactionResponseBody
}

// transactionIngester is the interface for committing a single transaction.
type transactionIngester interface {
	Commit(ctx context.Context, identity *auth.Identity, candidate service.TransactionCandidate) (*service.CommitResult, error)
}

// AddTransactionHandler handles POST /v1/agent/add-transaction.
type AddTransactionHandler struct {
	Auth      identityResolver
	Ingester  transactionIngester
	Proposals proposalRegistry
}

// NewAddTransactionHandler creates a new AddTransactionHandler.
func NewAddTransactionHandler(resolver identityResolver, ingester transactionIngester, proposals proposalRegistry) *AddTransactionHandler {
	return &AddTransactionHandler{
		Auth:      resolver,
		Ingester:  ingester,
		Proposals: proposals,
	}
}

// Register registers the add transaction endpoint with the Huma API.
func (h *AddTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "add-transaction",
		Method:      http.MethodPost,
		Path:        "/v1/agent/add-transaction",
		Summary:     "Add transaction",
		Description: "Normalizes an extracted transaction and either saves it or asks the user to confirm.",
		Tags:        []string{"Agent"},
	}, h.handle)
}

func (h *AddTransactionHandler) handle(ctx context.Context, input *AddTransactionInput) (*AddTransactionOutput, error) {
	logData := logging.GetLogData(ctx)

	identity, err := authorize(ctx, h.Auth, input.Authorization)
	if err != nil {
		return nil, err
	}

	candidate := service.NormalizeCandidate(input.Body.Data)

	// Receipt-backed candidates always go through user review.
	if input.Body.HasImage || !candidate.IsComplete() {
		message := messageNeedsReview
		if input.Body.HasImage {
			message = messageReceiptReview
		}

		if input.Body.MessageID != "" {
			h.Proposals.Put(&conversation.Proposal{
				MessageID:   input.Body.MessageID,
				UserEmail:   identity.Email,
				Kind:        conversation.KindAddTransaction,
				Transaction: &candidate,
			})
		}

		return &AddTransactionOutput{Body: AddTransactionResponseBody{
			Success:              true,
			RequiresConfirmation: true,
			Transaction:          candidate,
			Message:              message,
		}}, nil
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("commitMs")
	}
	result, err := h.Ingester.Commit(ctx, identity, candidate)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "Failed to process transaction", err)
	}

	return &AddTransactionOutput{Body: AddTransactionResponseBody{
		Success:              true,
		RequiresConfirmation: false,
		Transaction:          candidate,
		TransactionID:        result.TransactionID,
		Message:              messageTransactionSaved,
	}}, nil
}
