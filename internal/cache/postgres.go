package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
)

const postgresMigrations = `
CREATE TABLE IF NOT EXISTS cache_entries (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	expires_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_cache_entries_expires_at ON cache_entries(expires_at);
`

// PostgresCache persists cache entries in Postgres, the backend for
// deployments where several bot replicas should share one warm cache
// without running Redis.
type PostgresCache struct {
	db *sql.DB
}

// NewPostgresCache connects to Postgres at dsn and applies migrations.
func NewPostgresCache(dsn string) (*PostgresCache, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres cache DSN not set")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres cache: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}
	if _, err := db.Exec(postgresMigrations); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run cache migrations: %w", err)
	}
	slog.Info("postgres cache ready")
	return &PostgresCache{db: db}, nil
}

// Get returns the value for key, treating a passed deadline as a miss.
func (p *PostgresCache) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	var expiresAt time.Time
	err := p.db.QueryRowContext(ctx,
		`SELECT value, expires_at FROM cache_entries WHERE key = $1`, key,
	).Scan(&value, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("postgres cache get %s: %w", key, err)
	}
	if time.Now().After(expiresAt) {
		if _, err := p.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE key = $1`, key); err != nil {
			slog.Warn("PostgresCache failed to evict expired entry", "key", key, "error", err)
		}
		return "", false, nil
	}
	return value, true, nil
}

// Set upserts the entry with a fresh deadline.
func (p *PostgresCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO cache_entries (key, value, expires_at) VALUES ($1, $2, $3)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at`,
		key, value, time.Now().Add(ttl))
	if err != nil {
		return fmt.Errorf("postgres cache set %s: %w", key, err)
	}
	return nil
}

// Delete removes the entry for key.
func (p *PostgresCache) Delete(ctx context.Context, key string) error {
	if _, err := p.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE key = $1`, key); err != nil {
		return fmt.Errorf("postgres cache delete %s: %w", key, err)
	}
	return nil
}

// Close closes the database handle.
func (p *PostgresCache) Close() error {
	return p.db.Close()
}
