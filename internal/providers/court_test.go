package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"companybot/internal/cache"
)

func TestCourtSearchCases(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/cases", req.URL.Path)
		assert.Equal(t, "7707083893", req.URL.Query().Get("inn"))
		assert.Equal(t, "2", req.URL.Query().Get("page"))
		assert.Equal(t, "10", req.URL.Query().Get("per_page"))
		_, _ = w.Write([]byte(`{"total": 25, "cases": [{"number": "А40-1/2024", "date": "15.01.2024", "status": "Рассматривается"}]}`))
	}))
	defer srv.Close()

	c := NewCourt(cache.NewMemoryCache(), srv.URL)
	page := c.SearchCases(context.Background(), "7707083893", 2)

	require.NotNil(t, page)
	assert.Equal(t, 25, page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 3, page.TotalPages())
	require.Len(t, page.Cases, 1)
	assert.Equal(t, "А40-1/2024", page.Cases[0].Number)
	assert.Empty(t, page.Note)
}

func TestCourtCachesNonEmptyPages(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"total": 1, "cases": [{"number": "А40-1/2024"}]}`))
	}))
	defer srv.Close()

	c := NewCourt(cache.NewMemoryCache(), srv.URL)
	for i := 0; i < 3; i++ {
		page := c.SearchCases(context.Background(), "7707083893", 1)
		require.Len(t, page.Cases, 1)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestCourtEmptyPageAnnotatedAndUncached(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"total": 0, "cases": []}`))
	}))
	defer srv.Close()

	c := NewCourt(cache.NewMemoryCache(), srv.URL)
	page := c.SearchCases(context.Background(), "7707083893", 1)
	assert.Empty(t, page.Cases)
	assert.NotEmpty(t, page.Note)

	c.SearchCases(context.Background(), "7707083893", 1)
	assert.Equal(t, int32(2), calls.Load(), "empty pages are re-queried, not cached")
}

func TestCourtDegradesOnUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewCourt(cache.NewMemoryCache(), srv.URL)
	page := c.SearchCases(context.Background(), "7707083893", 1)

	require.NotNil(t, page, "an upstream failure must still yield a renderable page")
	assert.Empty(t, page.Cases)
	assert.Equal(t, courtUnavailableNote, page.Note)
	assert.Equal(t, 1, page.Page)
}

func TestCourtWithoutBaseURL(t *testing.T) {
	c := NewCourt(cache.NewMemoryCache(), "")
	page := c.SearchCases(context.Background(), "7707083893", 1)

	require.NotNil(t, page)
	assert.Empty(t, page.Cases)
	assert.Equal(t, courtEmptyNote, page.Note)
}

func TestCourtNormalizesPageCursor(t *testing.T) {
	c := NewCourt(cache.NewMemoryCache(), "")
	page := c.SearchCases(context.Background(), "7707083893", 0)
	assert.Equal(t, 1, page.Page)
}

func TestProcurementSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/procurements", req.URL.Path)
		_, _ = w.Write([]byte(`{"total": 2, "procurements": [
			{"number": "0173100007724", "date": "01.03.2024", "sum": "1500000.00 руб.", "status": "Завершена"},
			{"number": "0173100007725", "date": "02.03.2024", "sum": "200000.00 руб.", "status": "Активна"}
		]}`))
	}))
	defer srv.Close()

	p := NewProcurement(cache.NewMemoryCache(), srv.URL)
	page := p.SearchProcurements(context.Background(), "7707083893", 1)

	require.Len(t, page.Procurements, 2)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, "0173100007724", page.Procurements[0].Number)
}

func TestProcurementDegradesOnFailure(t *testing.T) {
	p := NewProcurement(cache.NewMemoryCache(), "http://127.0.0.1:1")
	page := p.SearchProcurements(context.Background(), "7707083893", 1)

	require.NotNil(t, page)
	assert.Empty(t, page.Procurements)
	assert.Equal(t, procurementUnavailableNote, page.Note)
}

func TestProcurementWithoutBaseURL(t *testing.T) {
	p := NewProcurement(cache.NewMemoryCache(), "")
	page := p.SearchProcurements(context.Background(), "7707083893", 1)

	assert.Empty(t, page.Procurements)
	assert.Equal(t, procurementEmptyNote, page.Note)
}
