package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-agent-server/internal/service"
)

// FiltersInput is the Huma input for listing filter options.
type FiltersInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
}

// FiltersOutput is the Huma output for listing filter options.
type FiltersOutput struct {
	Body service.FilterOptions
}

// filterOptionsLister is the interface for listing a user's filter options.
type filterOptionsLister interface {
	FilterOptionsForUser(ctx context.Context, email string) (*service.FilterOptions, error)
}

// FiltersHandler handles GET /v1/transactions/filters.
type FiltersHandler struct {
	Auth               identityResolver
	TransactionService filterOptionsLister
}

// NewFiltersHandler creates a new FiltersHandler.
func NewFiltersHandler(resolver identityResolver, svc filterOptionsLister) *FiltersHandler {
	return &FiltersHandler{
		Auth:               resolver,
		TransactionService: svc,
	}
}

// Register registers the filters endpoint with the Huma API.
func (h *FiltersHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transaction-filters",
		Method:      http.MethodGet,
		Path:        "/v1/transactions/filters",
		Summary:     "List transaction filter options",
		Description: "Returns the distinct category and account names available to the caller.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *FiltersHandler) handle(ctx context.Context, input *FiltersInput) (*FiltersOutput, error) {
	identity, err := h.Auth.Resolve(ctx, input.Authorization)
	if err != nil {
		return nil, huma.NewError(http.StatusUnauthorized, "Unauthorized", err)
	}

	options, err := h.TransactionService.FilterOptionsForUser(ctx, identity.Email)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "Failed to fetch filter options", err)
	}

	return &FiltersOutput{Body: *options}, nil
}
