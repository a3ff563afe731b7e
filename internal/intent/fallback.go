package intent

import "strings"

const fallbackConfidence = 0.6

// fallbackClassify scans the lowercased message for a fixed keyword set per
// intent. Checks run in priority order; the first match wins.
func fallbackClassify(message string, hasFile bool) *Result {
	lower := strings.ToLower(message)

	contains := func(keywords ...string) bool {
		for _, keyword := range keywords {
			if strings.Contains(lower, keyword) {
				return true
			}
		}
		return false
	}

	switch {
	case contains("spent", "bought", "paid", "rupees", "₹", "rs"):
		return &Result{
			Intent:     AddTransaction,
			Confidence: fallbackConfidence,
			Response:   "I understand you want to add a transaction, but I need more details. Could you please provide the amount, what you spent on, and which account you used?",
		}
	case hasFile || contains("upload", "bulk", "csv"):
		return &Result{
			Intent:     BulkUpload,
			Confidence: fallbackConfidence,
			Response:   "I see you want to upload transactions in bulk. Please upload your file and I'll help you process it.",
		}
	case contains("budget", "spending limit"):
		return &Result{
			Intent:     BudgetManagement,
			Confidence: fallbackConfidence,
			Response:   "I can help you with budget management. What would you like to know about your budgets?",
		}
	case contains("investment", "portfolio", "stocks"):
		return &Result{
			Intent:     InvestmentQuery,
			Confidence: fallbackConfidence,
			Response:   "I can help you with investment-related questions. What would you like to know about your investments?",
		}
	default:
		return &Result{
			Intent:     GeneralQuery,
			Confidence: fallbackConfidence,
			Response:   "I'm here to help with your finances! I can help you add transactions, manage budgets, and answer financial questions. What would you like to do?",
		}
	}
}
