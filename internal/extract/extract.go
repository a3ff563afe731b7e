// Package extract turns uploaded documents into transaction candidates. It
// chains an external document parser (file to markdown) with a generative
// structured-extraction step (markdown to candidates). Nothing here touches
// permanent storage; the only side effect is a temp file removed on every
// exit path.
package extract

import "errors"

// ErrExtraction wraps failures of the external parsing or extraction calls.
var ErrExtraction = errors.New("extract: extraction failed")

// Candidate is one extracted transaction row. A non-empty Error field marks
// the error payload shape: the extractor reports failure as a single-element
// array whose first element carries "error".
type Candidate struct {
	Date          string  `json:"date,omitempty"`
	TransactionID string  `json:"transaction_id,omitempty"`
	Name          string  `json:"name,omitempty"`
	Type          string  `json:"type,omitempty"`
	Amount        float64 `json:"amount,omitempty"`
	Error         string  `json:"error,omitempty"`
}

// IsErrorPayload reports whether the candidate list is the extractor's
// error shape rather than transaction data.
func IsErrorPayload(candidates []Candidate) bool {
	return len(candidates) > 0 && candidates[0].Error != ""
}
