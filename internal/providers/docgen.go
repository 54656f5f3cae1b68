package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// docgenTimeout bounds one document-generation call. Generation is the
// slowest upstream, so it gets the top of the design's timeout range.
const docgenTimeout = 15 * time.Second

// maxDocumentSize caps the accepted document payload at 20 MiB.
const maxDocumentSize = 20 << 20

// DocSection is one titled block of an export request.
type DocSection struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// DocGen calls the document-generation upstream, turning canonical
// section text into PDF bytes. Unlike the data adapters it does not
// degrade: a failed generation is a real error the export flow reports.
type DocGen struct {
	baseURL string
	client  *http.Client
}

// NewDocGen creates a document-generation adapter.
func NewDocGen(baseURL string) *DocGen {
	return &DocGen{
		baseURL: baseURL,
		client:  &http.Client{Timeout: docgenTimeout},
	}
}

type docgenRequest struct {
	Title    string       `json:"title"`
	Sections []DocSection `json:"sections"`
}

// Generate renders the titled sections into a PDF document.
func (d *DocGen) Generate(ctx context.Context, title string, sections []DocSection) ([]byte, error) {
	if d.baseURL == "" {
		return nil, fmt.Errorf("document generation is not configured")
	}

	body, err := json.Marshal(docgenRequest{Title: title, Sections: sections})
	if err != nil {
		return nil, fmt.Errorf("failed to encode document request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build document request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/pdf")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("document generation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("document generator returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read generated document: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("document generator returned an empty document")
	}
	slog.Debug("DocGen generated document", "title", title, "bytes", len(data))
	return data, nil
}
