// Package gemini wraps the generative language API behind a small
// text-in/text-out client so callers can be tested against an interface.
package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const callTimeout = 30 * time.Second

type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewClient constructs a shared Gemini client for the configured model.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return &Client{
		client: client,
		model:  client.GenerativeModel(model),
	}, nil
}

// GenerateText sends a prompt and returns the concatenated text parts of the
// first candidate. Each call runs under its own timeout.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini: empty response")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("gemini: no text parts in response")
	}
	return sb.String(), nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
