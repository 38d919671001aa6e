package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/team-pulse/pkg/config"
)

func TestMemoryStoreSetGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	defer store.Close()

	value := []byte("report")
	require.NoError(t, store.Set(ctx, "k", value, time.Minute))
	value[0] = 'X'

	got, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "report", string(got))

	require.NoError(t, store.Delete(ctx, "k"))
	_, ok, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	defer store.Close()

	now := time.Date(2025, time.May, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set(ctx, "short", []byte("a"), time.Second))
	require.NoError(t, store.Set(ctx, "forever", []byte("b"), 0))

	now = now.Add(2 * time.Second)

	_, ok, _ := store.Get(ctx, "short")
	assert.False(t, ok)
	_, ok, _ = store.Get(ctx, "forever")
	assert.True(t, ok)

	store.purge()
	store.mu.RLock()
	assert.Len(t, store.items, 1)
	store.mu.RUnlock()
}

func TestMemoryStoreCloseTwice(t *testing.T) {
	store := NewMemoryStore()
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}

func TestNewFallsBackToMemory(t *testing.T) {
	cfg := &config.Config{}
	store := New(context.Background(), cfg, nil)
	defer store.Close()
	assert.IsType(t, &MemoryStore{}, store)

	cfg.Redis = config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: "1"}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	store = New(ctx, cfg, nil)
	defer store.Close()
	assert.IsType(t, &MemoryStore{}, store)
}

func TestRedisKey(t *testing.T) {
	assert.Equal(t, "teampulse:report:abc", redisKey("report:abc"))
}
