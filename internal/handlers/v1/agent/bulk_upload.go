package agent

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/carson-networks/finance-agent-server/internal/conversation"
	"github.com/carson-networks/finance-agent-server/internal/extract"
	"github.com/carson-networks/finance-agent-server/internal/logging"
)

const maxUploadBytes = 20 << 20

// candidateExtractor is the interface for turning an uploaded document into
// transaction candidates.
type candidateExtractor interface {
	ExtractFromFile(ctx context.Context, fileName string, contents []byte) ([]extract.Candidate, error)
}

// BulkUploadHandler handles POST /v1/agent/bulk-upload. Registered as a
// plain handler because the request is multipart, not JSON.
type BulkUploadHandler struct {
	Auth      identityResolver
	Extractor candidateExtractor
	Proposals proposalRegistry
}

// NewBulkUploadHandler creates a new BulkUploadHandler.
func NewBulkUploadHandler(resolver identityResolver, extractor candidateExtractor, proposals proposalRegistry) *BulkUploadHandler {
	return &BulkUploadHandler{
		Auth:      resolver,
		Extractor: extractor,
		Proposals: proposals,
	}
}

// Handler extracts transaction candidates from an uploaded document. An
// extractor error payload is returned verbatim with status 400.
func (h *BulkUploadHandler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
		return nil
	}

	req.Body = http.MaxBytesReader(w, req.Body, maxUploadBytes)
	file, header, err := req.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "No file uploaded"})
		return nil
	}
	defer file.Close()

	contents, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Failed to read uploaded file"})
		return nil
	}

	logData.AddData("fileName", header.Filename)
	logData.AddData("fileSize", len(contents))

	// Tracking a proposal needs a verified owner; extraction alone does
	// not.
	messageID := req.FormValue("messageId")
	var ownerEmail string
	if messageID != "" {
		identity, err := h.Auth.Resolve(req.Context(), req.Header.Get("Authorization"))
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "Unauthorized"})
			return nil
		}
		ownerEmail = identity.Email
	}

	stopTimer := logData.AddTiming("extractMs")
	candidates, err := h.Extractor.ExtractFromFile(req.Context(), header.Filename, contents)
	stopTimer()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "Failed to process document"})
		return err
	}

	if extract.IsErrorPayload(candidates) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success":      false,
			"error":        candidates[0].Error,
			"transactions": candidates,
		})
		return nil
	}

	if messageID != "" {
		h.Proposals.Put(&conversation.Proposal{
			MessageID: messageID,
			UserEmail: ownerEmail,
			Kind:      conversation.KindBulkUpload,
			Batch:     candidates,
		})
	}

	logData.AddData("candidateCount", len(candidates))
	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"transactions": candidates,
	})
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
