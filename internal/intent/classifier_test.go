package intent

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubModel struct {
	text string
	err  error
}

func (s *stubModel) GenerateText(_ context.Context, _ string) (string, error) {
	return s.text, s.err
}

func TestClassifyParsesModelJSON(t *testing.T) {
	model := &stubModel{text: `{
		"intent": "add_transaction",
		"confidence": 0.92,
		"response": "Adding your lunch expense.",
		"data": {"amount": 500, "category": "Food & Dining", "account": "Unknown", "description": "lunch", "type": "EXPENSE"}
	}`}
	classifier := NewClassifier(model, logrus.New())

	result, err := classifier.Classify(context.Background(), "spent 500 on lunch", false, "")
	require.NoError(t, err)
	assert.Equal(t, AddTransaction, result.Intent)
	assert.Equal(t, 0.92, result.Confidence)
	require.NotNil(t, result.Data)
	assert.Equal(t, 500.0, result.Data.Amount)
	assert.Equal(t, "Food & Dining", result.Data.Category)
}

func TestClassifyStripsCodeFences(t *testing.T) {
	model := &stubModel{text: "```json\n{\"intent\": \"general_query\", \"confidence\": 0.8, \"response\": \"Hello!\"}\n```"}
	classifier := NewClassifier(model, logrus.New())

	result, err := classifier.Classify(context.Background(), "hi there", false, "")
	require.NoError(t, err)
	assert.Equal(t, GeneralQuery, result.Intent)
	assert.Equal(t, "Hello!", result.Response)
}

func TestClassifyMalformedOutputFallsBack(t *testing.T) {
	tests := []struct {
		name       string
		modelText  string
		message    string
		hasFile    bool
		wantIntent string
	}{
		{
			name:       "not json, spending keywords",
			modelText:  "Sure! I added that for you.",
			message:    "spent 500 on lunch",
			wantIntent: AddTransaction,
		},
		{
			name:       "truncated json, file attached",
			modelText:  `{"intent": "bulk_up`,
			message:    "please process this",
			hasFile:    true,
			wantIntent: BulkUpload,
		},
		{
			name:       "empty intent field, portfolio question",
			modelText:  `{"confidence": 0.9, "response": "hmm"}`,
			message:    "What's my portfolio doing?",
			wantIntent: InvestmentQuery,
		},
		{
			name:       "garbage, budget question",
			modelText:  "<<<>>>",
			message:    "show me my budget",
			wantIntent: BudgetManagement,
		},
		{
			name:       "garbage, no keywords",
			modelText:  "<<<>>>",
			message:    "hello",
			wantIntent: GeneralQuery,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			classifier := NewClassifier(&stubModel{text: test.modelText}, logrus.New())

			result, err := classifier.Classify(context.Background(), test.message, test.hasFile, "")
			require.NoError(t, err)
			assert.Equal(t, test.wantIntent, result.Intent)
			assert.Equal(t, 0.6, result.Confidence)
			assert.NotEmpty(t, result.Response)
		})
	}
}

func TestClassifyModelFailure(t *testing.T) {
	classifier := NewClassifier(&stubModel{err: errors.New("connection refused")}, logrus.New())

	_, err := classifier.Classify(context.Background(), "spent 500 on lunch", false, "")
	assert.ErrorIs(t, err, ErrClassificationUnavailable)
}
