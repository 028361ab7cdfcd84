package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"danawa-crawler/internal/types"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	defer c.Close()
	ctx := context.Background()

	_, ok := c.Get(ctx, "https://example.com/a")
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "https://example.com/a", "<html>a</html>"))

	html, ok := c.Get(ctx, "https://example.com/a")
	assert.True(t, ok)
	assert.Equal(t, "<html>a</html>", html)
	assert.Equal(t, 1, c.Size())
}

func TestMemoryCache_Expired(t *testing.T) {
	c := NewMemoryCache(10 * time.Millisecond)
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "u", "v"))
	time.Sleep(20 * time.Millisecond)

	_, ok := c.Get(ctx, "u")
	assert.False(t, ok)
}

func TestMemoryCache_RemoveExpired(t *testing.T) {
	c := NewMemoryCache(time.Hour)
	defer c.Close()

	c.data[makeKey("old")] = cacheItem{html: "x", expiration: time.Now().Add(-time.Second)}
	require.NoError(t, c.Set(context.Background(), "new", "y"))

	c.removeExpired()

	assert.Equal(t, 1, c.Size())
}

func TestMemoryCache_CloseTwice(t *testing.T) {
	c := NewMemoryCache(time.Minute)

	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
}

func TestNew(t *testing.T) {
	config := types.DefaultConfig()

	config.CacheType = "none"
	c, err := New(config)
	require.NoError(t, err)
	assert.IsType(t, Noop{}, c)

	config.CacheType = "memory"
	c, err = New(config)
	require.NoError(t, err)
	assert.IsType(t, &MemoryCache{}, c)
	c.Close()

	config.CacheType = "disk"
	_, err = New(config)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported cache type")
}

func TestNoop(t *testing.T) {
	var c Noop
	require.NoError(t, c.Set(context.Background(), "u", "v"))

	_, ok := c.Get(context.Background(), "u")
	assert.False(t, ok)
}

func TestRedisCache(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set")
	}

	c, err := NewRedisCache(redisURL, time.Minute)
	require.NoError(t, err)
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "https://example.com/redis", "<html/>"))
	html, ok := c.Get(ctx, "https://example.com/redis")
	assert.True(t, ok)
	assert.Equal(t, "<html/>", html)
}

func TestNewRedisCache_BadURL(t *testing.T) {
	_, err := NewRedisCache("not-a-url", time.Minute)
	assert.Error(t, err)
}
