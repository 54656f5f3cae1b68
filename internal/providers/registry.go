// Package providers contains the adapters for every upstream data
// source: the company registry, court records, procurement records,
// the AI text formatter and the document-generation service.
//
// Every adapter follows the same discipline: consult the cache first,
// call the upstream with a bounded timeout, normalize the raw response
// into canonical shapes (missing fields become the explicit "no data"
// sentinel), cache only non-empty results, and degrade to an annotated
// renderable result instead of surfacing upstream failures to the user.
package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"companybot/internal/cache"
	"companybot/internal/models"
)

// DefaultRegistryBaseURL is the suggestions API of the company registry.
const DefaultRegistryBaseURL = "https://suggestions.dadata.ru/suggestions/api/4_1/rs"

// registryTimeout bounds one registry lookup end to end.
const registryTimeout = 15 * time.Second

// Registry looks up companies by their national identifiers.
type Registry struct {
	baseURL string
	apiKey  string
	client  *http.Client
	cache   cache.Cache
}

// RegistryOpts holds configuration options for the Registry adapter.
type RegistryOpts struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// RegistryOption configures the Registry adapter.
type RegistryOption func(*RegistryOpts)

// WithRegistryBaseURL overrides the upstream base URL, mainly for tests.
func WithRegistryBaseURL(url string) RegistryOption {
	return func(o *RegistryOpts) { o.BaseURL = url }
}

// WithRegistryAPIKey sets the registry API token.
func WithRegistryAPIKey(key string) RegistryOption {
	return func(o *RegistryOpts) { o.APIKey = key }
}

// WithRegistryHTTPClient overrides the HTTP client.
func WithRegistryHTTPClient(c *http.Client) RegistryOption {
	return func(o *RegistryOpts) { o.Client = c }
}

// NewRegistry creates a registry adapter. The API key is mandatory.
func NewRegistry(c cache.Cache, opts ...RegistryOption) (*Registry, error) {
	cfg := RegistryOpts{BaseURL: DefaultRegistryBaseURL}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("registry API key not set")
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: registryTimeout}
	}
	return &Registry{baseURL: cfg.BaseURL, apiKey: cfg.APIKey, client: cfg.Client, cache: c}, nil
}

// FindByINN looks up a company by its 10/12-digit identifier.
// A nil record with a nil error means the registry confirmed no match.
func (r *Registry) FindByINN(ctx context.Context, inn string) (*models.CompanyRecord, error) {
	return r.find(ctx, "inn", inn)
}

// FindByOGRN looks up a company by its 13/15-digit registration number.
func (r *Registry) FindByOGRN(ctx context.Context, ogrn string) (*models.CompanyRecord, error) {
	return r.find(ctx, "ogrn", ogrn)
}

func (r *Registry) find(ctx context.Context, kind, query string) (*models.CompanyRecord, error) {
	key := cache.Key("company", kind, query, 0)
	rec, err := cache.Fetch(ctx, r.cache, key, cache.EntityTTL, func(ctx context.Context) (*models.CompanyRecord, bool, error) {
		raw, err := r.findByID(ctx, query)
		if err != nil {
			slog.Error("Registry lookup failed", "kind", kind, "query", query, "error", err)
			return nil, false, err
		}
		if raw == nil {
			slog.Info("Registry lookup found no match", "kind", kind, "query", query)
			return nil, false, nil
		}
		rec := normalizeParty(raw)
		slog.Info("Registry lookup succeeded", "kind", kind, "query", query, "inn", rec.INN)
		return rec, true, nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// findByID performs the findById/party call and returns the first
// suggestion, or nil when the registry reports no match.
func (r *Registry) findByID(ctx context.Context, query string) (*partySuggestion, error) {
	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, fmt.Errorf("failed to encode registry query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/findById/party", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build registry request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("registry request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("registry returned status %d", resp.StatusCode)
	}

	var parsed partyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode registry response: %w", err)
	}
	if len(parsed.Suggestions) == 0 {
		return nil, nil
	}
	return &parsed.Suggestions[0], nil
}
