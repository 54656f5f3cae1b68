package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultDirPermissions defines the permissions for database directories.
const DefaultDirPermissions = 0755

const sqliteMigrations = `
CREATE TABLE IF NOT EXISTS cache_entries (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	expires_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_cache_entries_expires_at ON cache_entries(expires_at);
`

// SQLiteCache persists cache entries in a local SQLite file, so warm
// lookups survive process restarts on single-node deployments.
type SQLiteCache struct {
	db *sql.DB
}

// NewSQLiteCache opens (creating directories as needed) the SQLite
// database at dsn and applies migrations.
func NewSQLiteCache(dsn string) (*SQLiteCache, error) {
	if dsn == "" {
		return nil, fmt.Errorf("sqlite cache DSN not set")
	}
	dir := filepath.Dir(dsn)
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite cache: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite ping failed: %w", err)
	}
	if _, err := db.Exec(sqliteMigrations); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run cache migrations: %w", err)
	}
	slog.Info("sqlite cache ready", "dsn", dsn)
	return &SQLiteCache{db: db}, nil
}

// Get returns the value for key. Expiry is checked in Go against the
// stored deadline; expired rows are deleted on access.
func (s *SQLiteCache) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	var expiresAt time.Time
	err := s.db.QueryRowContext(ctx,
		`SELECT value, expires_at FROM cache_entries WHERE key = ?`, key,
	).Scan(&value, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("sqlite cache get %s: %w", key, err)
	}
	if time.Now().After(expiresAt) {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE key = ?`, key); err != nil {
			slog.Warn("SQLiteCache failed to evict expired entry", "key", key, "error", err)
		}
		return "", false, nil
	}
	return value, true, nil
}

// Set upserts the entry with a fresh deadline.
func (s *SQLiteCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cache_entries (key, value, expires_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`,
		key, value, time.Now().Add(ttl))
	if err != nil {
		return fmt.Errorf("sqlite cache set %s: %w", key, err)
	}
	return nil
}

// Delete removes the entry for key.
func (s *SQLiteCache) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE key = ?`, key); err != nil {
		return fmt.Errorf("sqlite cache delete %s: %w", key, err)
	}
	return nil
}

// Close closes the database handle.
func (s *SQLiteCache) Close() error {
	return s.db.Close()
}
