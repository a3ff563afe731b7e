package intent

import "fmt"

const promptTemplate = `
You are a financial assistant AI. Analyze the user's message and determine their intent.

User message: "%s"
Has file attached: %t
File name: %s

Available intents:
1. "add_transaction" - User wants to add a single transaction (mentions spending money, buying something, payment, etc.)
2. "bulk_upload" - User wants to upload multiple transactions from a file (CSV, Excel, bank statement)
3. "budget_management" - User asks about budgets, spending limits, budget planning
4. "investment_query" - User asks about investments, portfolio, stocks, mutual funds
5. "general_query" - General conversation, greetings, or other financial questions

If it's add_transaction, also extract:
- Amount (number only, no currency symbols)
- Category (Food & Dining, Transportation, Entertainment, Shopping, Groceries, Healthcare, Bills & Utilities, Others)
- Account type (SBI, HDFC, ICICI, AXIS, KOTAK, Cash, Credit Card, or Unknown)
- Description (clean version of what they spent on)

IMPORTANT: Respond ONLY with valid JSON. No additional text, explanations, or markdown formatting.

{
  "intent": "intent_name",
  "confidence": 0.0-1.0,
  "response": "helpful response to user",
  "data": {
    "amount": number (only for add_transaction),
    "category": "category" (only for add_transaction),
    "account": "account" (only for add_transaction),
    "description": "description" (only for add_transaction),
    "type": "EXPENSE" (only for add_transaction),
    "fileName": "filename" (only for bulk_upload)
  }
}
`

func buildPrompt(message string, hasFile bool, fileName string) string {
	if fileName == "" {
		fileName = "none"
	}
	return fmt.Sprintf(promptTemplate, message, hasFile, fileName)
}
