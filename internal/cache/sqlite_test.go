package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLiteCache(t *testing.T) *SQLiteCache {
	t.Helper()
	c, err := NewSQLiteCache(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestSQLiteCacheSetGet(t *testing.T) {
	ctx := context.Background()
	c := newTestSQLiteCache(t)

	_, ok, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", got)
}

func TestSQLiteCacheUpsert(t *testing.T) {
	ctx := context.Background()
	c := newTestSQLiteCache(t)

	require.NoError(t, c.Set(ctx, "k", "old", time.Minute))
	require.NoError(t, c.Set(ctx, "k", "new", time.Minute))

	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "new", got)
}

func TestSQLiteCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := newTestSQLiteCache(t)

	require.NoError(t, c.Set(ctx, "k", "v", -time.Second))
	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok, "entry past its deadline must be a miss")
}

func TestSQLiteCacheDelete(t *testing.T) {
	ctx := context.Background()
	c := newTestSQLiteCache(t)

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	require.NoError(t, c.Delete(ctx, "k"))

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewSelectsBackend(t *testing.T) {
	c, backend, err := New()
	require.NoError(t, err)
	defer c.Close()
	assert.Equal(t, "memory", backend)

	c, backend, err = New(WithDSN(filepath.Join(t.TempDir(), "cache.db")))
	require.NoError(t, err)
	defer c.Close()
	assert.Equal(t, "sqlite", backend)
}

func TestNewFallsBackWhenRedisUnavailable(t *testing.T) {
	c, backend, err := New(WithRedis("127.0.0.1:1", "", 0))
	require.NoError(t, err)
	defer c.Close()
	assert.Equal(t, "memory", backend)
}
