// Package agent holds the conversational endpoints: intent detection,
// single and bulk transaction ingestion, and proposal confirmation.
package agent

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-agent-server/internal/auth"
	"github.com/carson-networks/finance-agent-server/internal/conversation"
)

// identityResolver verifies bearer tokens; satisfied by the auth client.
type identityResolver interface {
	Resolve(ctx context.Context, authorization string) (*auth.Identity, error)
}

// proposalRegistry tracks pending ingestion proposals, scoped to the
// owning user; satisfied by the conversation store.
type proposalRegistry interface {
	Put(proposal *conversation.Proposal)
	Get(ownerEmail, messageID string) (*conversation.Proposal, error)
	Decide(ownerEmail, messageID string, state conversation.State) (*conversation.Proposal, error)
}

func authorize(ctx context.Context, resolver identityResolver, authorization string) (*auth.Identity, error) {
	identity, err := resolver.Resolve(ctx, authorization)
	if err != nil {
		return nil, huma.NewError(http.StatusUnauthorized, "Unauthorized", err)
	}
	return identity, nil
}
