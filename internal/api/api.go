// Package api provides the minimal HTTP status surface of companybot.
//
// It is independent of the conversation flows: a liveness endpoint for
// orchestration probes and a status endpoint reporting uptime and the
// selected cache backend.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// DefaultAddr is the default listen address for the status server.
const DefaultAddr = ":8080"

// Opts holds configuration options for the status server.
type Opts struct {
	Addr         string
	CacheBackend string
}

// Option configures the status server.
type Option func(*Opts)

// WithAddr overrides the listen address.
func WithAddr(addr string) Option {
	return func(o *Opts) { o.Addr = addr }
}

// WithCacheBackend records the selected cache backend for /status.
func WithCacheBackend(name string) Option {
	return func(o *Opts) { o.CacheBackend = name }
}

// Server is the status HTTP server.
type Server struct {
	srv          *http.Server
	startedAt    time.Time
	cacheBackend string
}

// NewServer builds the server and its routes.
func NewServer(opts ...Option) *Server {
	cfg := Opts{Addr: DefaultAddr, CacheBackend: "memory"}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Server{startedAt: time.Now(), cacheBackend: cfg.CacheBackend}
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.healthHandler)
	mux.HandleFunc("/status", s.statusHandler)
	s.srv = &http.Server{Addr: cfg.Addr, Handler: mux}
	return s
}

// Start begins serving in a background goroutine.
func (s *Server) Start() {
	go func() {
		slog.Info("status server listening", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("status server failed", "error", err)
		}
	}()
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

type statusResponse struct {
	Status       string `json:"status"`
	Uptime       string `json:"uptime"`
	CacheBackend string `json:"cache_backend"`
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSONResponse(w, http.StatusOK, statusResponse{
		Status:       "ok",
		Uptime:       time.Since(s.startedAt).Round(time.Second).String(),
		CacheBackend: s.cacheBackend,
	})
}

// writeJSONResponse writes a JSON response with the given status code.
func writeJSONResponse(w http.ResponseWriter, statusCode int, response interface{}) {
	jsonData, err := json.Marshal(response)
	if err != nil {
		slog.Error("Server.writeJSONResponse: failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, writeErr := w.Write(jsonData); writeErr != nil {
		slog.Error("Server.writeJSONResponse: failed to write JSON response", "error", writeErr)
	}
}
