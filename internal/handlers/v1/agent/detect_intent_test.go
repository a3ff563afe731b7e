package agent

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/finance-agent-server/internal/intent"
)

func newDetectIntentAPI(t *testing.T, classifier intentClassifier) humatest.TestAPI {
	_, api := humatest.New(t)
	NewDetectIntentHandler(classifier).Register(api)
	return api
}

func TestHTTP_DetectIntent(t *testing.T) {
	mockSvc := new(mockClassifier)
	mockSvc.On("Classify", mock.Anything, "spent 500 on lunch", false, "").
		Return(&intent.Result{
			Intent:     intent.AddTransaction,
			Confidence: 0.9,
			Response:   "Adding your lunch expense.",
			Data:       &intent.TransactionData{Amount: 500, Category: "Food & Dining", Type: "EXPENSE"},
		}, nil)

	resp := newDetectIntentAPI(t, mockSvc).Post("/v1/agent/detect-intent", DetectIntentBody{
		Message: "spent 500 on lunch",
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	var body intent.Result
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, intent.AddTransaction, body.Intent)
	assert.Equal(t, 500.0, body.Data.Amount)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_DetectIntent_ClassifierUnavailable(t *testing.T) {
	mockSvc := new(mockClassifier)
	mockSvc.On("Classify", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return((*intent.Result)(nil), errors.New("model unreachable"))

	resp := newDetectIntentAPI(t, mockSvc).Post("/v1/agent/detect-intent", DetectIntentBody{
		Message: "hello",
	})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}

func TestHTTP_DetectIntent_EmptyMessage(t *testing.T) {
	mockSvc := new(mockClassifier)

	resp := newDetectIntentAPI(t, mockSvc).Post("/v1/agent/detect-intent", DetectIntentBody{})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "Classify")
}
