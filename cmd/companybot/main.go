package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"companybot/internal/api"
	"companybot/internal/bot"
	"companybot/internal/cache"
	"companybot/internal/export"
	"companybot/internal/flow"
	"companybot/internal/messaging"
	"companybot/internal/providers"
	"companybot/internal/router"
	"companybot/internal/util"
)

// shutdownTimeout bounds graceful shutdown of the status server.
const shutdownTimeout = 10 * time.Second

// Config holds environment configuration.
type Config struct {
	RegistryAPIKey  string
	RegistryBaseURL string
	OpenAIKey       string
	CourtBaseURL    string
	ProcBaseURL     string
	DocGenBaseURL   string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	CacheDSN        string
	APIAddr         string
}

func main() {
	initializeLogger()
	config := loadEnvironmentConfig()

	apiAddr := flag.String("api-addr", config.APIAddr, "status server listen address")
	redisAddr := flag.String("redis-addr", config.RedisAddr, "redis address for the cache backend")
	cacheDSN := flag.String("cache-dsn", config.CacheDSN, "database DSN for the cache backend")
	flag.Parse()

	// The registry key is the only configuration the bot cannot run without.
	if config.RegistryAPIKey == "" {
		slog.Error("DADATA_API_KEY is not set")
		os.Exit(1)
	}

	store, backend, err := cache.New(
		cache.WithRedis(*redisAddr, config.RedisPassword, config.RedisDB),
		cache.WithDSN(*cacheDSN),
	)
	if err != nil {
		slog.Error("failed to initialize cache", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Warn("cache close failed", "error", err)
		}
	}()
	slog.Info("cache backend selected", "backend", backend)

	registry, err := providers.NewRegistry(store,
		providers.WithRegistryAPIKey(config.RegistryAPIKey),
		providers.WithRegistryBaseURL(config.RegistryBaseURL),
	)
	if err != nil {
		slog.Error("failed to initialize registry adapter", "error", err)
		os.Exit(1)
	}

	court := providers.NewCourt(store, config.CourtBaseURL)
	procurement := providers.NewProcurement(store, config.ProcBaseURL)
	docgen := providers.NewDocGen(config.DocGenBaseURL)

	var formatter router.ScreenFormatter
	if config.OpenAIKey != "" {
		f, err := providers.NewFormatter(providers.WithFormatterAPIKey(config.OpenAIKey))
		if err != nil {
			slog.Warn("formatter disabled", "error", err)
		} else {
			formatter = f
		}
	} else {
		slog.Info("OPENAI_API_KEY not set, screens use plain rendering")
	}

	contexts := flow.NewMemoryContextStore()
	capture := flow.NewCaptureFlow(contexts, registry)
	svc := messaging.NewChannelService()
	exporter := export.NewOrchestrator(docgen)
	disp := router.New(svc, contexts, capture, registry, court, procurement, formatter, exporter)
	loop := bot.NewLoop(svc, disp, capture)

	server := api.NewServer(api.WithAddr(*apiAddr), api.WithCacheBackend(backend))
	server.Start()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := svc.Start(ctx); err != nil {
		slog.Error("messaging service failed to start", "error", err)
		os.Exit(1)
	}

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		s := <-sig
		slog.Info("shutdown signal received", "signal", s)
		cancel()
	}()

	loop.Run(ctx)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Warn("status server shutdown failed", "error", err)
	}
	if err := svc.Stop(); err != nil {
		slog.Warn("messaging service stop failed", "error", err)
	}
	slog.Info("companybot exited")
}

// initializeLogger sets up structured logging; LOG_LEVEL selects the
// minimum level (debug, info, warn, error).
func initializeLogger() {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// loadEnvironmentConfig loads configuration from environment variables and .env file.
func loadEnvironmentConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	} else {
		slog.Debug("successfully loaded .env file")
	}

	return Config{
		RegistryAPIKey:  os.Getenv("DADATA_API_KEY"),
		RegistryBaseURL: util.ParseStringEnv("DADATA_BASE_URL", providers.DefaultRegistryBaseURL),
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		CourtBaseURL:    os.Getenv("COURT_API_URL"),
		ProcBaseURL:     os.Getenv("PROCUREMENT_API_URL"),
		DocGenBaseURL:   os.Getenv("DOCGEN_URL"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         util.ParseIntEnv("REDIS_DB", 0),
		CacheDSN:        os.Getenv("CACHE_DSN"),
		APIAddr:         util.ParseStringEnv("API_ADDR", api.DefaultAddr),
	}
}
