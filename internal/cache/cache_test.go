package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "company:inn:7707083893:0", Key("company", "inn", "7707083893", 0))
	assert.Equal(t, "court:inn:7707083893:3", Key("court", "inn", "7707083893", 3))
}

// recordingCache counts backend calls and can simulate failures.
type recordingCache struct {
	inner   Cache
	gets    int
	sets    int
	deletes int
	getErr  error
	setErr  error
}

func (r *recordingCache) Get(ctx context.Context, key string) (string, bool, error) {
	r.gets++
	if r.getErr != nil {
		return "", false, r.getErr
	}
	return r.inner.Get(ctx, key)
}

func (r *recordingCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	r.sets++
	if r.setErr != nil {
		return r.setErr
	}
	return r.inner.Set(ctx, key, value, ttl)
}

func (r *recordingCache) Delete(ctx context.Context, key string) error {
	r.deletes++
	return r.inner.Delete(ctx, key)
}

func (r *recordingCache) Close() error { return r.inner.Close() }

type payload struct {
	Name string `json:"name"`
}

func TestFetchMissThenHit(t *testing.T) {
	ctx := context.Background()
	c := &recordingCache{inner: NewMemoryCache()}

	calls := 0
	fn := func(context.Context) (payload, bool, error) {
		calls++
		return payload{Name: "ПАО СБЕРБАНК"}, true, nil
	}

	got, err := Fetch(ctx, c, "company:inn:7707083893:0", EntityTTL, fn)
	require.NoError(t, err)
	assert.Equal(t, "ПАО СБЕРБАНК", got.Name)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, c.sets)

	// Second fetch is served from the cache without touching fn.
	got, err = Fetch(ctx, c, "company:inn:7707083893:0", EntityTTL, fn)
	require.NoError(t, err)
	assert.Equal(t, "ПАО СБЕРБАНК", got.Name)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, c.sets)
}

func TestFetchSkipsWriteForEmptyResult(t *testing.T) {
	ctx := context.Background()
	c := &recordingCache{inner: NewMemoryCache()}

	calls := 0
	fn := func(context.Context) (payload, bool, error) {
		calls++
		return payload{}, false, nil
	}

	_, err := Fetch(ctx, c, "company:inn:0000000000:0", EntityTTL, fn)
	require.NoError(t, err)
	assert.Zero(t, c.sets)

	// An empty answer never masks a later retry.
	_, err = Fetch(ctx, c, "company:inn:0000000000:0", EntityTTL, fn)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestFetchDoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	c := &recordingCache{inner: NewMemoryCache()}

	upstreamErr := errors.New("upstream down")
	fn := func(context.Context) (payload, bool, error) {
		return payload{}, false, upstreamErr
	}

	_, err := Fetch(ctx, c, "k", EntityTTL, fn)
	assert.ErrorIs(t, err, upstreamErr)
	assert.Zero(t, c.sets)
}

func TestFetchFailsOpenOnBackendError(t *testing.T) {
	ctx := context.Background()
	c := &recordingCache{inner: NewMemoryCache(), getErr: errors.New("backend down"), setErr: errors.New("backend down")}

	got, err := Fetch(ctx, c, "k", EntityTTL, func(context.Context) (payload, bool, error) {
		return payload{Name: "ok"}, true, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", got.Name)
}

func TestFetchDeletesCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c := &recordingCache{inner: NewMemoryCache()}
	require.NoError(t, c.inner.Set(ctx, "k", "{not json", EntityTTL))

	got, err := Fetch(ctx, c, "k", EntityTTL, func(context.Context) (payload, bool, error) {
		return payload{Name: "fresh"}, true, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", got.Name)
	assert.Equal(t, 1, c.deletes)
}
