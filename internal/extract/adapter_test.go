package extract

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubParser struct {
	pages    []string
	err      error
	lastPath string
}

func (s *stubParser) Parse(_ context.Context, filePath string) ([]string, error) {
	s.lastPath = filePath
	return s.pages, s.err
}

type stubModel struct {
	text       string
	err        error
	lastPrompt string
}

func (s *stubModel) GenerateText(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	return s.text, s.err
}

func TestExtractFromFile(t *testing.T) {
	parser := &stubParser{pages: []string{"page one", "page two"}}
	model := &stubModel{text: `[
		{"date": "2024-01-05", "transaction_id": "REF001", "name": "Coffee Shop", "type": "debit", "amount": 4.5}
	]`}
	adapter := NewAdapter(parser, model, logrus.New())

	candidates, err := adapter.ExtractFromFile(context.Background(), "statement.pdf", []byte("pdf-bytes"))
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "REF001", candidates[0].TransactionID)
	assert.Equal(t, 4.5, candidates[0].Amount)

	assert.Contains(t, model.lastPrompt, "page one\n\npage two")
	assert.NoFileExists(t, parser.lastPath)
}

func TestExtractFromFileCleansUpOnParseFailure(t *testing.T) {
	parser := &stubParser{err: errors.New("parser down")}
	adapter := NewAdapter(parser, &stubModel{}, logrus.New())

	_, err := adapter.ExtractFromFile(context.Background(), "statement.pdf", []byte("pdf-bytes"))
	require.Error(t, err)

	require.NotEmpty(t, parser.lastPath)
	assert.NoFileExists(t, parser.lastPath)
}

func TestExtractFromFileRejectsPathTraversalInName(t *testing.T) {
	parser := &stubParser{pages: []string{"text"}}
	model := &stubModel{text: `[]`}
	adapter := NewAdapter(parser, model, logrus.New())

	_, err := adapter.ExtractFromFile(context.Background(), "../../etc/statement.pdf", []byte("x"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(parser.lastPath, os.TempDir()))
	assert.Equal(t, os.TempDir(), filepath.Dir(parser.lastPath))
}

func TestExtractFromTextErrorPayload(t *testing.T) {
	model := &stubModel{text: "```json\n[{\"error\": \"document is not a bank statement\"}]\n```"}
	adapter := NewAdapter(&stubParser{}, model, logrus.New())

	candidates, err := adapter.ExtractFromText(context.Background(), "some text")
	require.NoError(t, err)
	assert.True(t, IsErrorPayload(candidates))
	assert.Equal(t, "document is not a bank statement", candidates[0].Error)
}

func TestExtractFromTextModelFailure(t *testing.T) {
	adapter := NewAdapter(&stubParser{}, &stubModel{err: errors.New("timeout")}, logrus.New())

	_, err := adapter.ExtractFromText(context.Background(), "some text")
	assert.ErrorIs(t, err, ErrExtraction)
}

func TestExtractFromTextUnparseableOutput(t *testing.T) {
	adapter := NewAdapter(&stubParser{}, &stubModel{text: "I could not find any transactions."}, logrus.New())

	_, err := adapter.ExtractFromText(context.Background(), "some text")
	assert.ErrorIs(t, err, ErrExtraction)
}

func TestIsErrorPayload(t *testing.T) {
	assert.False(t, IsErrorPayload(nil))
	assert.False(t, IsErrorPayload([]Candidate{{Name: "Coffee"}}))
	assert.True(t, IsErrorPayload([]Candidate{{Error: "bad"}, {Name: "Coffee"}}))
}
