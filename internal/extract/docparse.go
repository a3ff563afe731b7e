package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DocParser renders a document file into markdown pages.
type DocParser interface {
	Parse(ctx context.Context, filePath string) ([]string, error)
}

// DocParserClient calls the hosted document-parsing service. One client is
// constructed at startup and shared.
type DocParserClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewDocParserClient(baseURL, apiKey string) *DocParserClient {
	return &DocParserClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type parseResponse struct {
	Pages []struct {
		Markdown string `json:"markdown"`
	} `json:"pages"`
}

// Parse uploads the file and returns one markdown string per page.
func (c *DocParserClient) Parse(ctx context.Context, filePath string) ([]string, error) {
	body, contentType, err := buildMultipartBody(filePath)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/parsing/upload", body)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %s", ErrExtraction, err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: parse document: %s", ErrExtraction, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: parser returned status %d: %s", ErrExtraction, resp.StatusCode, payload)
	}

	var parsed parseResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decode parser response: %s", ErrExtraction, err)
	}

	pages := make([]string, 0, len(parsed.Pages))
	for _, page := range parsed.Pages {
		pages = append(pages, page.Markdown)
	}
	return pages, nil
}

func buildMultipartBody(filePath string) (io.Reader, string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, "", fmt.Errorf("%w: open upload: %s", ErrExtraction, err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return nil, "", fmt.Errorf("%w: build multipart: %s", ErrExtraction, err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("%w: copy upload: %s", ErrExtraction, err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("%w: finish multipart: %s", ErrExtraction, err)
	}

	return &buf, writer.FormDataContentType(), nil
}
