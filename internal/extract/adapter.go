package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// TextGenerator is the structured-extraction model dependency; satisfied by
// the gemini client.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Adapter is the full file-to-candidates pipeline.
type Adapter struct {
	parser DocParser
	model  TextGenerator
	logger *logrus.Logger
}

func NewAdapter(parser DocParser, model TextGenerator, logger *logrus.Logger) *Adapter {
	return &Adapter{
		parser: parser,
		model:  model,
		logger: logger,
	}
}

// ExtractFromFile writes the upload to a temp file, renders it to markdown
// via the document parser, and extracts candidates from the combined text.
// The temp file is removed on every exit path.
func (a *Adapter) ExtractFromFile(ctx context.Context, fileName string, contents []byte) ([]Candidate, error) {
	tempPath := filepath.Join(os.TempDir(), fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(fileName)))
	if err := os.WriteFile(tempPath, contents, 0o600); err != nil {
		return nil, fmt.Errorf("%w: write temp file: %s", ErrExtraction, err)
	}
	defer os.Remove(tempPath)

	pages, err := a.parser.Parse(ctx, tempPath)
	if err != nil {
		return nil, err
	}

	return a.ExtractFromText(ctx, strings.Join(pages, "\n\n"))
}

// ExtractFromText submits rendered document text to the model and parses
// the candidate array out of its response. An error payload from the model
// is returned as data, not as an error; callers detect it with
// IsErrorPayload.
func (a *Adapter) ExtractFromText(ctx context.Context, markdown string) ([]Candidate, error) {
	text, err := a.model.GenerateText(ctx, buildExtractionPrompt(markdown))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrExtraction, err)
	}

	candidates, err := parseCandidates(text)
	if err != nil {
		a.logger.WithError(err).Warn("Extract.ParseCandidates.Failed")
		return nil, err
	}
	return candidates, nil
}

// parseCandidates strips code fences and extracts the first
// bracket-delimited JSON array from the model output.
func parseCandidates(text string) ([]Candidate, error) {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("%w: no JSON array in model output", ErrExtraction)
	}

	var candidates []Candidate
	if err := json.Unmarshal([]byte(text[start:end+1]), &candidates); err != nil {
		return nil, fmt.Errorf("%w: parse candidates: %s", ErrExtraction, err)
	}
	return candidates, nil
}

const extractionPromptTemplate = `
You are a financial document parser. Extract every transaction from the
document text below into a JSON array.

Document text:
%s

Each transaction must be an object with exactly these fields:
- "date": transaction date as written in the document (string)
- "transaction_id": the reference or transaction number (string)
- "name": merchant or transaction description (string)
- "type": "credit" or "debit" (string)
- "amount": transaction amount as a number, no currency symbols

If the document contains no recognizable transactions, respond with a
single-element array: [{"error": "reason the document could not be parsed"}]

IMPORTANT: Respond ONLY with the JSON array. No additional text,
explanations, or markdown formatting.
`

func buildExtractionPrompt(markdown string) string {
	return fmt.Sprintf(extractionPromptTemplate, markdown)
}
