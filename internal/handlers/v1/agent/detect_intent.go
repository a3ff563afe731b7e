package agent

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-agent-server/internal/intent"
	"github.com/carson-networks/finance-agent-server/internal/logging"
)

// DetectIntentBody is the request body for intent detection.
type DetectIntentBody struct {
	Message  string `json:"message" required:"true" minLength:"1" doc:"Free-text chat message"`
	HasFile  bool   `json:"hasFile,omitempty" doc:"Whether the message carries an attached file"`
	FileName string `json:"fileName,omitempty" doc:"Attached file name, if any"`
}

// DetectIntentInput is the Huma input for intent detection.
type DetectIntentInput struct {
	Body DetectIntentBody
}

// DetectIntentOutput is the Huma output for intent detection.
type DetectIntentOutput struct {
	Body intent.Result
}

// intentClassifier is the interface for classifying messages.
type intentClassifier interface {
	Classify(ctx context.Context, message string, hasFile bool, fileName string) (*intent.Result, error)
}

// DetectIntentHandler handles POST /v1/agent/detect-intent.
type DetectIntentHandler struct {
	Classifier intentClassifier
}

// NewDetectIntentHandler creates a new DetectIntentHandler.
func NewDetectIntentHandler(classifier intentClassifier) *DetectIntentHandler {
	return &DetectIntentHandler{Classifier: classifier}
}

// Register registers the detect intent endpoint with the Huma API.
func (h *DetectIntentHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "detect-intent",
		Method:      http.MethodPost,
		Path:        "/v1/agent/detect-intent",
		Summary:     "Detect intent",
		Description: "Classifies a chat message into an intent, extracting transaction fields when applicable.",
		Tags:        []string{"Agent"},
	}, h.handle)
}

func (h *DetectIntentHandler) handle(ctx context.Context, input *DetectIntentInput) (*DetectIntentOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("classifyMs")
	}
	result, err := h.Classifier.Classify(ctx, input.Body.Message, input.Body.HasFile, input.Body.FileName)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "Failed to detect intent", err)
	}

	if logData != nil {
		logData.AddData("intent", result.Intent)
	}

	return &DetectIntentOutput{Body: *result}, nil
}
