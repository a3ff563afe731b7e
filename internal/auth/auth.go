package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrUnauthorized is returned when the identity provider rejects the token
// or no token is supplied.
var ErrUnauthorized = errors.New("auth: unauthorized")

// Identity is the resolved caller behind a bearer token.
type Identity struct {
	ID    string
	Email string
	Name  string
}

// Client verifies bearer tokens against the identity provider's user
// endpoint. One Client is constructed at startup and shared.
type Client struct {
	baseURL string
	anonKey string
	http    *http.Client
	logger  *logrus.Logger
}

func NewClient(baseURL, anonKey string, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

type userResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	UserMetadata struct {
		FullName string `json:"full_name"`
		Name     string `json:"name"`
	} `json:"user_metadata"`
}

// Resolve validates the Authorization header value and returns the caller's
// identity. Any missing, malformed, or rejected token maps to
// ErrUnauthorized.
func (c *Client) Resolve(ctx context.Context, authorization string) (*Identity, error) {
	token := strings.TrimSpace(strings.TrimPrefix(authorization, "Bearer "))
	if token == "" {
		return nil, ErrUnauthorized
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("auth: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", c.anonKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth: verify token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.WithField("status", resp.StatusCode).Debug("Auth.Resolve.Rejected")
		return nil, ErrUnauthorized
	}

	var user userResponse
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("auth: decode user: %w", err)
	}
	if user.Email == "" {
		return nil, ErrUnauthorized
	}

	name := user.UserMetadata.FullName
	if name == "" {
		name = user.UserMetadata.Name
	}

	return &Identity{
		ID:    user.ID,
		Email: user.Email,
		Name:  name,
	}, nil
}
