package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"pantry-recommender/internal/infrastructure/config"
	"pantry-recommender/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func newTestStore(t *testing.T, maxSize int) (*MemoryStore, *fakeClock) {
	t.Helper()
	store := NewMemoryStore(&config.CacheConfig{Enabled: true, MaxSize: maxSize, TTL: time.Minute})
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	store.now = clock.now
	t.Cleanup(func() { store.Close() })
	return store, clock
}

func TestMemoryStoreGetSet(t *testing.T) {
	store, _ := newTestStore(t, 10)
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.True(t, errors.Is(err, common.ErrCacheMiss))

	require.NoError(t, store.Set(ctx, "k", []byte("v")))
	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	stats := store.Stats()
	assert.Equal(t, int64(1), stats["hits"])
	assert.Equal(t, int64(1), stats["misses"])
	assert.Equal(t, 1, stats["size"])
	assert.Equal(t, 0.5, stats["hit_ratio"])
}

func TestMemoryStoreExpiry(t *testing.T) {
	store, clock := newTestStore(t, 10)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("v")))
	clock.t = clock.t.Add(2 * time.Minute)

	_, err := store.Get(ctx, "k")
	assert.True(t, errors.Is(err, common.ErrCacheMiss))
	assert.Equal(t, 0, store.Stats()["size"])
	assert.Equal(t, int64(1), store.Stats()["evictions"])
}

func TestMemoryStoreEvictsLeastUsed(t *testing.T) {
	store, clock := newTestStore(t, 2)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a", []byte("1")))
	clock.t = clock.t.Add(time.Second)
	require.NoError(t, store.Set(ctx, "b", []byte("2")))

	_, err := store.Get(ctx, "a")
	require.NoError(t, err)

	require.NoError(t, store.Set(ctx, "c", []byte("3")))

	_, err = store.Get(ctx, "b")
	assert.True(t, errors.Is(err, common.ErrCacheMiss), "b was never read and should be evicted")
	_, err = store.Get(ctx, "a")
	assert.NoError(t, err)
	_, err = store.Get(ctx, "c")
	assert.NoError(t, err)
}

func TestMemoryStoreOverwriteDoesNotEvict(t *testing.T) {
	store, _ := newTestStore(t, 1)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a", []byte("1")))
	require.NoError(t, store.Set(ctx, "a", []byte("2")))

	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), got)
	assert.Equal(t, int64(0), store.Stats()["evictions"])
}

func TestNewDisabled(t *testing.T) {
	store, err := New(&config.CacheConfig{Enabled: false})
	require.NoError(t, err)
	assert.Nil(t, store)
}

func TestNewUnknownBackend(t *testing.T) {
	_, err := New(&config.CacheConfig{Enabled: true, Backend: "memcached"})
	assert.Error(t, err)
}

func TestNewMemoryBackend(t *testing.T) {
	store, err := New(&config.CacheConfig{Enabled: true, Backend: "memory", MaxSize: 1, TTL: time.Minute, CleanupInterval: time.Hour})
	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, "memory", store.Stats()["backend"])
	assert.NoError(t, store.Close())
}

func TestRedisStoreWithoutClient(t *testing.T) {
	store := &RedisStore{config: &config.CacheConfig{TTL: time.Minute}}
	ctx := context.Background()

	_, err := store.Get(ctx, "k")
	assert.True(t, errors.Is(err, common.ErrCacheDisabled))
	assert.True(t, errors.Is(store.Set(ctx, "k", []byte("v")), common.ErrCacheDisabled))
	assert.Equal(t, "redis", store.Stats()["backend"])
	assert.NoError(t, store.Close())
}

func TestNewRedisStoreUnreachable(t *testing.T) {
	_, err := NewRedisStore(&config.CacheConfig{RedisAddr: "127.0.0.1:1", TTL: time.Minute})
	assert.Error(t, err)
}
