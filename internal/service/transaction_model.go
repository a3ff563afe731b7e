package service

// ListedTransaction is a transaction shaped for the dashboard list view.
// Amounts are sign-adjusted: negative for expenses, positive for income.
type ListedTransaction struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Account     string  `json:"account"`
	ReferenceID string  `json:"referenceId"`
}

// ListOptions narrows a transaction listing. "all" or empty selector values
// mean no filter; Days bounds the transaction date window.
type ListOptions struct {
	Search   string
	Category string
	Account  string
	Type     string
	Days     int
}

// FilterOptions are the distinct selector values available to the current
// user.
type FilterOptions struct {
	Categories []string `json:"categories"`
	Accounts   []string `json:"accounts"`
}
