package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"companybot/internal/cache"
	"companybot/internal/models"
)

const procurementEmptyNote = "для получения актуальных данных о госзакупках рекомендуется официальный API zakupki.gov.ru: требуется регистрация и ключи доступа на портале"

const procurementUnavailableNote = "данные о госзакупках временно недоступны, попробуйте позже"

// Procurement searches government procurement records for a company.
// Same degradation contract as Court: always a renderable page.
type Procurement struct {
	baseURL string
	client  *http.Client
	cache   cache.Cache
}

// NewProcurement creates a procurement-records adapter. An empty
// baseURL keeps the adapter in degraded mode.
func NewProcurement(c cache.Cache, baseURL string) *Procurement {
	return &Procurement{
		baseURL: baseURL,
		client:  &http.Client{Timeout: listTimeout},
		cache:   c,
	}
}

type procurementSearchResponse struct {
	Total        int                  `json:"total"`
	Procurements []models.Procurement `json:"procurements"`
	Note         string               `json:"note"`
}

// SearchProcurements returns one page of procurement records for the
// company, degrading to an annotated empty page on upstream failure.
func (p *Procurement) SearchProcurements(ctx context.Context, inn string, page int) *models.ProcurementsPage {
	if page < 1 {
		page = 1
	}
	key := cache.Key("procurement", "search", inn, page)
	result, err := cache.Fetch(ctx, p.cache, key, cache.ListTTL, func(ctx context.Context) (*models.ProcurementsPage, bool, error) {
		pg, err := p.search(ctx, inn, page)
		if err != nil {
			slog.Error("Procurement search failed, degrading", "inn", inn, "page", page, "error", err)
			return &models.ProcurementsPage{
				Page:    page,
				PerPage: DefaultListPageSize,
				Note:    procurementUnavailableNote,
			}, false, nil
		}
		return pg, len(pg.Procurements) > 0, nil
	})
	if err != nil || result == nil {
		return &models.ProcurementsPage{Page: page, PerPage: DefaultListPageSize, Note: procurementUnavailableNote}
	}
	return result
}

func (p *Procurement) search(ctx context.Context, inn string, page int) (*models.ProcurementsPage, error) {
	if p.baseURL == "" {
		return &models.ProcurementsPage{
			Page:    page,
			PerPage: DefaultListPageSize,
			Note:    procurementEmptyNote,
		}, nil
	}

	q := url.Values{}
	q.Set("inn", inn)
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(DefaultListPageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/procurements?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build procurement request: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("procurement request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("procurement upstream returned status %d", resp.StatusCode)
	}

	var parsed procurementSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode procurement response: %w", err)
	}

	result := &models.ProcurementsPage{
		Procurements: parsed.Procurements,
		Total:        parsed.Total,
		Page:         page,
		PerPage:      DefaultListPageSize,
		Note:         parsed.Note,
	}
	if len(result.Procurements) == 0 && result.Note == "" {
		result.Note = procurementEmptyNote
	}
	return result, nil
}
