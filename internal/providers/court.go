package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"companybot/internal/cache"
	"companybot/internal/models"
)

// DefaultListPageSize is the page size for court and procurement lists.
const DefaultListPageSize = 10

// listTimeout bounds one list-search upstream call.
const listTimeout = 10 * time.Second

// courtEmptyNote explains an empty result to the user; carried on the
// page so the renderer never shows a bare empty table.
const courtEmptyNote = "для получения актуальных данных о судебных делах требуется доступ к API суда или специализированным сервисам"

// courtUnavailableNote annotates a degraded page after upstream failure.
const courtUnavailableNote = "данные о судебных делах временно недоступны, попробуйте позже"

// Court searches court filings for a company. Upstream failures are
// never surfaced: the adapter degrades to an empty annotated page.
type Court struct {
	baseURL string
	client  *http.Client
	cache   cache.Cache
}

// NewCourt creates a court-records adapter. An empty baseURL keeps the
// adapter in degraded mode, answering every search with an annotated
// empty page — the bot stays fully navigable without the upstream.
func NewCourt(c cache.Cache, baseURL string) *Court {
	return &Court{
		baseURL: baseURL,
		client:  &http.Client{Timeout: listTimeout},
		cache:   c,
	}
}

type courtSearchResponse struct {
	Total int                `json:"total"`
	Cases []models.CourtCase `json:"cases"`
	Note  string             `json:"note"`
}

// SearchCases returns one page of court filings for the company.
// The page is always renderable; Note explains empty results.
func (c *Court) SearchCases(ctx context.Context, inn string, page int) *models.CourtCasesPage {
	if page < 1 {
		page = 1
	}
	key := cache.Key("court", "cases", inn, page)
	result, err := cache.Fetch(ctx, c.cache, key, cache.ListTTL, func(ctx context.Context) (*models.CourtCasesPage, bool, error) {
		p, err := c.search(ctx, inn, page)
		if err != nil {
			slog.Error("Court search failed, degrading", "inn", inn, "page", page, "error", err)
			return &models.CourtCasesPage{
				Page:    page,
				PerPage: DefaultListPageSize,
				Note:    courtUnavailableNote,
			}, false, nil
		}
		// Empty pages are never cached so a later retry re-hits the upstream.
		return p, len(p.Cases) > 0, nil
	})
	if err != nil || result == nil {
		return &models.CourtCasesPage{Page: page, PerPage: DefaultListPageSize, Note: courtUnavailableNote}
	}
	return result
}

func (c *Court) search(ctx context.Context, inn string, page int) (*models.CourtCasesPage, error) {
	if c.baseURL == "" {
		return &models.CourtCasesPage{
			Page:    page,
			PerPage: DefaultListPageSize,
			Note:    courtEmptyNote,
		}, nil
	}

	q := url.Values{}
	q.Set("inn", inn)
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(DefaultListPageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/cases?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build court request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("court request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("court upstream returned status %d", resp.StatusCode)
	}

	var parsed courtSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode court response: %w", err)
	}

	result := &models.CourtCasesPage{
		Cases:   parsed.Cases,
		Total:   parsed.Total,
		Page:    page,
		PerPage: DefaultListPageSize,
		Note:    parsed.Note,
	}
	if len(result.Cases) == 0 && result.Note == "" {
		result.Note = courtEmptyNote
	}
	return result, nil
}
