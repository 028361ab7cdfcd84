package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"danawa-crawler/internal/types"
)

// Cache stores fetched page HTML keyed by URL
type Cache interface {
	Get(ctx context.Context, url string) (string, bool)
	Set(ctx context.Context, url string, html string) error
	Close() error
}

// New creates the cache selected by config.CacheType ("memory", "redis" or "none")
func New(config *types.Config) (Cache, error) {
	switch config.CacheType {
	case "", "none":
		return Noop{}, nil
	case "memory":
		return NewMemoryCache(config.CacheTTL), nil
	case "redis":
		c, err := NewRedisCache(config.RedisURL, config.CacheTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", config.CacheType)
	}
}

// Noop never stores anything
type Noop struct{}

func (Noop) Get(context.Context, string) (string, bool) {
	return "", false
}

func (Noop) Set(context.Context, string, string) error {
	return nil
}

func (Noop) Close() error {
	return nil
}

func makeKey(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "html:" + hex.EncodeToString(hash[:])
}
