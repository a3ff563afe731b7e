// Package transaction holds the dashboard read endpoints for the
// transaction history view.
package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-agent-server/internal/auth"
	"github.com/carson-networks/finance-agent-server/internal/logging"
	"github.com/carson-networks/finance-agent-server/internal/service"
)

// identityResolver verifies bearer tokens; satisfied by the auth client.
type identityResolver interface {
	Resolve(ctx context.Context, authorization string) (*auth.Identity, error)
}

// ListTransactionsInput is the Huma input for listing transactions.
type ListTransactionsInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	Search        string `query:"search" doc:"Case-insensitive substring match on description or category name"`
	Category      string `query:"category" doc:"Category name, or \"all\""`
	Account       string `query:"account" doc:"Account name, or \"all\""`
	Type          string `query:"type" doc:"Transaction type (income/expense), or \"all\""`
	Days          int    `query:"days" minimum:"0" doc:"Transaction date window in days, default 30"`
}

// ListTransactionsOutput is the Huma output for listing transactions.
type ListTransactionsOutput struct {
	Body []service.ListedTransaction
}

// transactionLister is the interface for listing a user's transactions.
type transactionLister interface {
	ListForUser(ctx context.Context, email string, options service.ListOptions) ([]service.ListedTransaction, error)
}

// ListTransactionsHandler handles GET /v1/transactions.
type ListTransactionsHandler struct {
	Auth               identityResolver
	TransactionService transactionLister
}

// NewListTransactionsHandler creates a new ListTransactionsHandler.
func NewListTransactionsHandler(resolver identityResolver, svc transactionLister) *ListTransactionsHandler {
	return &ListTransactionsHandler{
		Auth:               resolver,
		TransactionService: svc,
	}
}

// Register registers the list transactions endpoint with the Huma API.
func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodGet,
		Path:        "/v1/transactions",
		Summary:     "List transactions",
		Description: "Returns the caller's transactions, newest first, with sign-adjusted amounts.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *ListTransactionsHandler) handle(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	logData := logging.GetLogData(ctx)

	identity, err := h.Auth.Resolve(ctx, input.Authorization)
	if err != nil {
		return nil, huma.NewError(http.StatusUnauthorized, "Unauthorized", err)
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listTransactionsMs")
	}
	transactions, err := h.TransactionService.ListForUser(ctx, identity.Email, service.ListOptions{
		Search:   input.Search,
		Category: input.Category,
		Account:  input.Account,
		Type:     input.Type,
		Days:     input.Days,
	})
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "Failed to fetch transactions", err)
	}

	if logData != nil {
		logData.AddData("transactionCount", len(transactions))
	}

	return &ListTransactionsOutput{Body: transactions}, nil
}
