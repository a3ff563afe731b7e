package agent

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-agent-server/internal/conversation"
)

// CancelProposalBody is the request body for declining a pending proposal.
type CancelProposalBody struct {
	MessageID string `json:"messageId" required:"true" minLength:"1" doc:"Chat message id of the pending proposal"`
}

// CancelProposalInput is the Huma input for declining a proposal.
type CancelProposalInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	Body          CancelProposalBody
}

// CancelProposalResponseBody is the response body for declining a proposal.
type CancelProposalResponseBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// CancelProposalOutput is the Huma output for declining a proposal.
type CancelProposalOutput struct {
	Body CancelProposalResponseBody
}

// CancelProposalHandler handles POST /v1/agent/cancel-proposal.
type CancelProposalHandler struct {
	Auth      identityResolver
	Proposals proposalRegistry
}

// NewCancelProposalHandler creates a new CancelProposalHandler.
func NewCancelProposalHandler(resolver identityResolver, proposals proposalRegistry) *CancelProposalHandler {
	return &CancelProposalHandler{
		Auth:      resolver,
		Proposals: proposals,
	}
}

// Register registers the cancel proposal endpoint with the Huma API.
func (h *CancelProposalHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "cancel-proposal",
		Method:      http.MethodPost,
		Path:        "/v1/agent/cancel-proposal",
		Summary:     "Cancel proposal",
		Description: "Records the user's decision to discard a pending ingestion proposal. Nothing is persisted.",
		Tags:        []string{"Agent"},
	}, h.handle)
}

func (h *CancelProposalHandler) handle(ctx context.Context, input *CancelProposalInput) (*CancelProposalOutput, error) {
	identity, err := authorize(ctx, h.Auth, input.Authorization)
	if err != nil {
		return nil, err
	}

	if _, err := h.Proposals.Decide(identity.Email, input.Body.MessageID, conversation.StateCancelled); err != nil {
		if errors.Is(err, conversation.ErrNotFound) {
			return nil, huma.NewError(http.StatusNotFound, "No pending proposal for this message", err)
		}
		return nil, huma.NewError(http.StatusInternalServerError, "Failed to cancel proposal", err)
	}

	return &CancelProposalOutput{Body: CancelProposalResponseBody{
		Success: true,
		Message: "Proposal cancelled. Nothing was saved.",
	}}, nil
}
