package transaction

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/finance-agent-server/internal/auth"
	"github.com/carson-networks/finance-agent-server/internal/service"
)

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Resolve(ctx context.Context, authorization string) (*auth.Identity, error) {
	args := m.Called(ctx, authorization)
	identity, _ := args.Get(0).(*auth.Identity)
	return identity, args.Error(1)
}

func allowAnyToken() *mockResolver {
	resolver := new(mockResolver)
	resolver.On("Resolve", mock.Anything, mock.Anything).
		Return(&auth.Identity{ID: "u1", Email: "jo@example.com", Name: "Jo"}, nil)
	return resolver
}

type mockTransactionLister struct {
	mock.Mock
}

func (m *mockTransactionLister) ListForUser(ctx context.Context, email string, options service.ListOptions) ([]service.ListedTransaction, error) {
	args := m.Called(ctx, email, options)
	listed, _ := args.Get(0).([]service.ListedTransaction)
	return listed, args.Error(1)
}

func newListTestAPI(t *testing.T, resolver identityResolver, svc transactionLister) humatest.TestAPI {
	_, api := humatest.New(t)
	NewListTransactionsHandler(resolver, svc).Register(api)
	return api
}

func TestHTTP_ListTransactions(t *testing.T) {
	mockSvc := new(mockTransactionLister)
	mockSvc.On("ListForUser", mock.Anything, "jo@example.com", mock.MatchedBy(func(o service.ListOptions) bool {
		return o.Search == "coffee" && o.Category == "all" && o.Days == 7
	})).Return([]service.ListedTransaction{
		{ID: "t1", Date: "2024-01-05", Description: "Coffee Shop", Category: "Food & Dining", Amount: -4.5, Account: "SBI Account", ReferenceID: "TXN-1"},
	}, nil)

	resp := newListTestAPI(t, allowAnyToken(), mockSvc).
		Get("/v1/transactions?search=coffee&category=all&days=7", "Authorization: Bearer token")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body []service.ListedTransaction
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body, 1)
	assert.Equal(t, -4.5, body[0].Amount)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_ListTransactions_Unauthorized(t *testing.T) {
	resolver := new(mockResolver)
	resolver.On("Resolve", mock.Anything, mock.Anything).
		Return((*auth.Identity)(nil), auth.ErrUnauthorized)
	mockSvc := new(mockTransactionLister)

	resp := newListTestAPI(t, resolver, mockSvc).Get("/v1/transactions")

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	mockSvc.AssertNotCalled(t, "ListForUser")
}

func TestHTTP_ListTransactions_ServiceError(t *testing.T) {
	mockSvc := new(mockTransactionLister)
	mockSvc.On("ListForUser", mock.Anything, mock.Anything, mock.Anything).
		Return(([]service.ListedTransaction)(nil), errors.New("database unavailable"))

	resp := newListTestAPI(t, allowAnyToken(), mockSvc).
		Get("/v1/transactions", "Authorization: Bearer token")

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}

type mockFilterLister struct {
	mock.Mock
}

func (m *mockFilterLister) FilterOptionsForUser(ctx context.Context, email string) (*service.FilterOptions, error) {
	args := m.Called(ctx, email)
	options, _ := args.Get(0).(*service.FilterOptions)
	return options, args.Error(1)
}

func TestHTTP_Filters(t *testing.T) {
	mockSvc := new(mockFilterLister)
	mockSvc.On("FilterOptionsForUser", mock.Anything, "jo@example.com").
		Return(&service.FilterOptions{
			Categories: []string{"Food & Dining", "Others"},
			Accounts:   []string{"SBI Account"},
		}, nil)

	_, api := humatest.New(t)
	NewFiltersHandler(allowAnyToken(), mockSvc).Register(api)

	resp := api.Get("/v1/transactions/filters", "Authorization: Bearer token")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body service.FilterOptions
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []string{"Food & Dining", "Others"}, body.Categories)
	mockSvc.AssertExpectations(t)
}
