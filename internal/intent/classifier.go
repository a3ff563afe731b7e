package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// TextGenerator is the model dependency; satisfied by the gemini client.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type Classifier struct {
	model  TextGenerator
	logger *logrus.Logger
}

func NewClassifier(model TextGenerator, logger *logrus.Logger) *Classifier {
	return &Classifier{
		model:  model,
		logger: logger,
	}
}

// Classify determines the intent of a chat message. Model output that
// cannot be parsed as JSON degrades to the keyword fallback; only a failed
// model call returns ErrClassificationUnavailable.
func (c *Classifier) Classify(ctx context.Context, message string, hasFile bool, fileName string) (*Result, error) {
	text, err := c.model.GenerateText(ctx, buildPrompt(message, hasFile, fileName))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrClassificationUnavailable, err)
	}

	result, err := parseModelResponse(text)
	if err != nil {
		c.logger.WithError(err).Warn("Intent.Classify.FallingBack")
		return fallbackClassify(message, hasFile), nil
	}
	return result, nil
}

// parseModelResponse strips code fences and extracts the first
// brace-delimited object from the model output.
func parseModelResponse(text string) (*Result, error) {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("intent: no JSON object in model output")
	}

	var result Result
	if err := json.Unmarshal([]byte(text[start:end+1]), &result); err != nil {
		return nil, fmt.Errorf("intent: parse model output: %w", err)
	}
	if result.Intent == "" {
		return nil, fmt.Errorf("intent: model output missing intent")
	}
	return &result, nil
}
