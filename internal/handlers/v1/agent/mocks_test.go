package agent

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/finance-agent-server/internal/auth"
	"github.com/carson-networks/finance-agent-server/internal/extract"
	"github.com/carson-networks/finance-agent-server/internal/intent"
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

func rejectAllTokens() *mockResolver {
	resolver := new(mockResolver)
	resolver.On("Resolve", mock.Anything, mock.Anything).
		Return((*auth.Identity)(nil), auth.ErrUnauthorized)
	return resolver
}

type mockClassifier struct {
	mock.Mock
}

func (m *mockClassifier) Classify(ctx context.Context, message string, hasFile bool, fileName string) (*intent.Result, error) {
	args := m.Called(ctx, message, hasFile, fileName)
	result, _ := args.Get(0).(*intent.Result)
	return result, args.Error(1)
}

type mockIngester struct {
	mock.Mock
}

func (m *mockIngester) Commit(ctx context.Context, identity *auth.Identity, candidate service.TransactionCandidate) (*service.CommitResult, error) {
	args := m.Called(ctx, identity, candidate)
	result, _ := args.Get(0).(*service.CommitResult)
	return result, args.Error(1)
}

type mockBulkIngester struct {
	mock.Mock
}

func (m *mockBulkIngester) BulkIngest(ctx context.Context, identity *auth.Identity, candidates []extract.Candidate) (*service.BulkResult, error) {
	args := m.Called(ctx, identity, candidates)
	result, _ := args.Get(0).(*service.BulkResult)
	return result, args.Error(1)
}
