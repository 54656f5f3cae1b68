package cache

import (
	"log/slog"
	"strings"
)

// Opts holds configuration options for cache backend selection.
type Opts struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	DSN           string
}

// Option configures cache backend selection.
type Option func(*Opts)

// WithRedis sets the Redis connection parameters.
func WithRedis(addr, password string, db int) Option {
	return func(o *Opts) {
		o.RedisAddr = addr
		o.RedisPassword = password
		o.RedisDB = db
	}
}

// WithDSN sets a database DSN. Postgres URLs select the Postgres
// backend, anything else is treated as a SQLite file path.
func WithDSN(dsn string) Option {
	return func(o *Opts) { o.DSN = dsn }
}

// New selects and constructs a cache backend: Redis when an address is
// configured, a database when a DSN is, the in-memory cache otherwise.
// An unreachable Redis degrades to the in-memory cache instead of
// failing startup — a cold cache is preferable to no bot.
func New(opts ...Option) (Cache, string, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.RedisAddr != "" {
		c, err := NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			slog.Warn("redis unavailable, falling back to in-memory cache", "addr", cfg.RedisAddr, "error", err)
			return NewMemoryCache(), "memory", nil
		}
		return c, "redis", nil
	}

	if cfg.DSN != "" {
		if strings.HasPrefix(cfg.DSN, "postgres://") || strings.HasPrefix(cfg.DSN, "postgresql://") {
			c, err := NewPostgresCache(cfg.DSN)
			if err != nil {
				return nil, "", err
			}
			return c, "postgres", nil
		}
		c, err := NewSQLiteCache(cfg.DSN)
		if err != nil {
			return nil, "", err
		}
		return c, "sqlite", nil
	}

	slog.Debug("no cache backend configured, using in-memory cache")
	return NewMemoryCache(), "memory", nil
}
