// Package cache provides the TTL-bounded cache that fronts every
// upstream data provider.
//
// The caching policy lives in one place: the generic Fetch wrapper.
// Adapters never touch a backend directly, so the rules — deterministic
// keys, per-entry TTL, fail-open on backend trouble, and never caching
// empty or failed results — are defined once and audited once.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// Default TTLs per query kind.
const (
	// EntityTTL bounds cached company lookups.
	EntityTTL = 3600 * time.Second
	// ListTTL bounds cached court/procurement search pages.
	ListTTL = 7200 * time.Second
)

// Cache is the key/value port shared by all backends. A Get after the
// entry's TTL has elapsed is a guaranteed miss in every implementation.
type Cache interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Key builds the deterministic cache key for a provider query:
// {namespace}:{kind}:{value}:{page}. Page 0 marks non-paginated lookups.
func Key(namespace, kind, value string, page int) string {
	return fmt.Sprintf("%s:%s:%s:%d", namespace, kind, value, page)
}

// Fetch runs fn through the cache. On a hit the cached JSON is
// decoded and returned without calling fn. On a miss fn is invoked;
// its result is written back only when fn reports it as cacheable
// (non-empty), so a failed or empty upstream answer never masks a
// later successful retry. Backend errors are logged and degrade to
// a miss — an unavailable cache must not take the bot down with it.
func Fetch[T any](ctx context.Context, c Cache, key string, ttl time.Duration, fn func(context.Context) (T, bool, error)) (T, error) {
	var zero T
	if cached, ok, err := c.Get(ctx, key); err != nil {
		slog.Warn("cache get failed, treating as miss", "key", key, "error", err)
	} else if ok {
		var v T
		if err := json.Unmarshal([]byte(cached), &v); err == nil {
			slog.Debug("cache hit", "key", key)
			return v, nil
		}
		// Undecodable entries are dropped so the next fetch repopulates them.
		slog.Warn("cache entry corrupt, deleting", "key", key)
		if err := c.Delete(ctx, key); err != nil {
			slog.Warn("cache delete failed", "key", key, "error", err)
		}
	}

	v, cacheable, err := fn(ctx)
	if err != nil {
		return zero, err
	}
	if !cacheable {
		slog.Debug("cache write skipped for empty result", "key", key)
		return v, nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		slog.Warn("cache marshal failed, skipping write", "key", key, "error", err)
		return v, nil
	}
	if err := c.Set(ctx, key, string(data), ttl); err != nil {
		slog.Warn("cache set failed", "key", key, "error", err)
	} else {
		slog.Debug("cache write", "key", key, "ttl", ttl)
	}
	return v, nil
}
