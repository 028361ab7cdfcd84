package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache keeps pages in redis so several crawler processes can share them
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to redisURL and verifies the connection
func NewRedisCache(redisURL string, ttl time.Duration) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return &RedisCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func (c *RedisCache) Get(ctx context.Context, url string) (string, bool) {
	html, err := c.client.Get(ctx, makeKey(url)).Result()
	// redis.Nil means a miss
	if err != nil {
		return "", false
	}
	return html, true
}

func (c *RedisCache) Set(ctx context.Context, url string, html string) error {
	return c.client.Set(ctx, makeKey(url), html, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
