// Package intent classifies free-text chat messages into a fixed intent
// set, primarily via a generative model with a deterministic keyword
// fallback when the model output cannot be parsed.
package intent

import "errors"

// ErrClassificationUnavailable is returned when the model call itself
// fails. Parse failures never surface here; they degrade to the fallback.
var ErrClassificationUnavailable = errors.New("intent: classification unavailable")

const (
	AddTransaction   = "add_transaction"
	BulkUpload       = "bulk_upload"
	BudgetManagement = "budget_management"
	InvestmentQuery  = "investment_query"
	GeneralQuery     = "general_query"
)

// TransactionData carries the structured fields extracted for the
// add_transaction intent, and the file name for bulk_upload.
type TransactionData struct {
	Amount      float64 `json:"amount,omitempty"`
	Category    string  `json:"category,omitempty"`
	Account     string  `json:"account,omitempty"`
	Description string  `json:"description,omitempty"`
	Type        string  `json:"type,omitempty"`
	FileName    string  `json:"fileName,omitempty"`
}

// Result is a classified message.
type Result struct {
	Intent     string           `json:"intent"`
	Confidence float64          `json:"confidence"`
	Response   string           `json:"response"`
	Data       *TransactionData `json:"data,omitempty"`
}
