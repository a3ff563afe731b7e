package agent

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-agent-server/internal/auth"
	"github.com/carson-networks/finance-agent-server/internal/conversation"
	"github.com/carson-networks/finance-agent-server/internal/extract"
	"github.com/carson-networks/finance-agent-server/internal/logging"
	"github.com/carson-networks/finance-agent-server/internal/service"
)

// ConfirmBulkUploadBody is the request body for confirming a bulk upload.
type ConfirmBulkUploadBody struct {
	MessageID    string              `json:"messageId,omitempty" doc:"Chat message id of the pending proposal"`
	Transactions []extract.Candidate `json:"transactions,omitempty" doc:"Inline candidates when no proposal is tracked"`
}

// ConfirmBulkUploadInput is the Huma input for confirming a bulk upload.
type ConfirmBulkUploadInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	Body          ConfirmBulkUploadBody
}

// ConfirmBulkUploadResponseBody is the response body for confirming a bulk
// upload.
type ConfirmBulkUploadResponseBody struct {
	Success        bool     `json:"success"`
	TransactionIDs []string `json:"transactionIds"`
	Count          int      `json:"count"`
	FilteredCount  int      `json:"filteredCount"`
	FailedCount    int      `json:"failedCount"`
	Message        string   `json:"message"`
}

// ConfirmBulkUploadOutput is the Huma output for confirming a bulk upload.
type ConfirmBulkUploadOutput struct {
	Body ConfirmBulkUploadResponseBody
}

// bulkIngester is the interface for saving an extracted candidate batch.
type bulkIngester interface {
	BulkIngest(ctx context.Context, identity *auth.Identity, candidates []extract.Candidate) (*service.BulkResult, error)
}

// ConfirmBulkUploadHandler handles POST /v1/agent/confirm-bulk-upload.
type ConfirmBulkUploadHandler struct {
	Auth      identityResolver
	Ingester  bulkIngester
	Proposals proposalRegistry
}

// NewConfirmBulkUploadHandler creates a new ConfirmBulkUploadHandler.
func NewConfirmBulkUploadHandler(resolver identityResolver, ingester bulkIngester, proposals proposalRegistry) *ConfirmBulkUploadHandler {
	return &ConfirmBulkUploadHandler{
		Auth:      resolver,
		Ingester:  ingester,
		Proposals: proposals,
	}
}

// Register registers the confirm bulk upload endpoint with the Huma API.
func (h *ConfirmBulkUploadHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "confirm-bulk-upload",
		Method:      http.MethodPost,
		Path:        "/v1/agent/confirm-bulk-upload",
		Summary:     "Confirm bulk upload",
		Description: "Saves a previously extracted transaction batch after user approval.",
		Tags:        []string{"Agent"},
	}, h.handle)
}

func (h *ConfirmBulkUploadHandler) handle(ctx context.Context, input *ConfirmBulkUploadInput) (*ConfirmBulkUploadOutput, error) {
	logData := logging.GetLogData(ctx)

	identity, err := authorize(ctx, h.Auth, input.Authorization)
	if err != nil {
		return nil, err
	}

	candidates := input.Body.Transactions
	if input.Body.MessageID != "" {
		proposal, err := h.Proposals.Decide(identity.Email, input.Body.MessageID, conversation.StateConfirmed)
		if errors.Is(err, conversation.ErrNotFound) {
			return nil, huma.NewError(http.StatusNotFound, "No pending bulk upload for this message", err)
		}
		if err != nil {
			return nil, huma.NewError(http.StatusInternalServerError, "Failed to confirm bulk upload", err)
		}
		candidates = proposal.Batch
	}
	if len(candidates) == 0 {
		return nil, huma.NewError(http.StatusBadRequest, "No transactions to save")
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("bulkIngestMs")
	}
	result, err := h.Ingester.BulkIngest(ctx, identity, candidates)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, bulkIngestError(err)
	}

	if logData != nil {
		logData.AddData("savedCount", result.Count)
		logData.AddData("filteredCount", result.FilteredCount)
	}

	return &ConfirmBulkUploadOutput{Body: ConfirmBulkUploadResponseBody{
		Success:        true,
		TransactionIDs: result.TransactionIDs,
		Count:          result.Count,
		FilteredCount:  result.FilteredCount,
		FailedCount:    result.FailedCount,
		Message:        result.Message,
	}}, nil
}

func bulkIngestError(err error) error {
	switch {
	case errors.Is(err, service.ErrExtractionPayload), errors.Is(err, service.ErrNoValidTransactions):
		return huma.NewError(http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, service.ErrPersistenceUnavailable):
		return huma.NewError(http.StatusServiceUnavailable, "Database temporarily unavailable, please retry", err)
	default:
		return huma.NewError(http.StatusInternalServerError, "Failed to save bulk transactions", err)
	}
}
