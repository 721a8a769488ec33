package cache_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alejandrodnm/edgefinder/internal/adapters/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore_SetAndGet(t *testing.T) {
	s, err := cache.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	at := time.Now().Truncate(time.Millisecond)
	require.NoError(t, s.Set(ctx, "markets:KXPGATOUR", cache.Entry{Value: []byte(`[1,2]`), FetchedAt: at, TTL: 2 * time.Minute}))

	e, ok, err := s.Get(ctx, "markets:KXPGATOUR")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[1,2]`, string(e.Value))
	assert.True(t, at.Equal(e.FetchedAt))
	assert.Equal(t, 2*time.Minute, e.TTL)
}

func TestSQLiteStore_Upsert(t *testing.T) {
	s, err := cache.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	now := time.Now()
	require.NoError(t, s.Set(ctx, "k", cache.Entry{Value: []byte("a"), FetchedAt: now, TTL: time.Minute}))
	require.NoError(t, s.Set(ctx, "k", cache.Entry{Value: []byte("b"), FetchedAt: now, TTL: time.Minute}))

	e, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "b", string(e.Value))
}

func TestSQLiteStore_PrunesExpiredOnOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	ctx := context.Background()

	s, err := cache.NewSQLiteStore(path)
	require.NoError(t, err)
	old := time.Now().Add(-time.Hour)
	require.NoError(t, s.Set(ctx, "stale", cache.Entry{Value: []byte("x"), FetchedAt: old, TTL: time.Minute}))
	require.NoError(t, s.Set(ctx, "fresh", cache.Entry{Value: []byte("y"), FetchedAt: time.Now(), TTL: time.Hour}))
	require.NoError(t, s.Close())

	s, err = cache.NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()

	_, ok, err := s.Get(ctx, "stale")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = s.Get(ctx, "fresh")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSQLiteStore_BacksTTLCache(t *testing.T) {
	s, err := cache.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	c := cache.NewTTLCache(s)
	defer c.Close()

	calls := 0
	fetch := func(context.Context) ([]byte, error) {
		calls++
		return []byte("payload"), nil
	}
	for i := 0; i < 2; i++ {
		v, err := c.GetOrRefresh(context.Background(), "predictions:pre_tournament", 5*time.Minute, fetch)
		require.NoError(t, err)
		assert.Equal(t, "payload", string(v))
	}
	assert.Equal(t, 1, calls)
}
