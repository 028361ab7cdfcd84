package cache

import (
	"context"
	"sync"
	"time"
)

type cacheItem struct {
	html       string
	expiration time.Time
}

// MemoryCache is a thread-safe in-memory page cache with TTL support
type MemoryCache struct {
	data  map[string]cacheItem
	ttl   time.Duration
	mutex sync.RWMutex
	done  chan struct{}
	once  sync.Once
}

// NewMemoryCache creates a new in-memory cache and starts its cleanup loop
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	c := &MemoryCache{
		data: make(map[string]cacheItem),
		ttl:  ttl,
		done: make(chan struct{}),
	}

	go c.cleanupExpired(cleanupInterval(ttl))

	return c
}

func cleanupInterval(ttl time.Duration) time.Duration {
	if ttl <= 0 || ttl > 10*time.Minute {
		return 10 * time.Minute
	}
	return ttl
}

// Get returns the cached page for url if present and not expired
func (c *MemoryCache) Get(ctx context.Context, url string) (string, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[makeKey(url)]
	if !exists || time.Now().After(item.expiration) {
		return "", false
	}
	return item.html, true
}

// Set stores a page for the cache TTL
func (c *MemoryCache) Set(ctx context.Context, url string, html string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[makeKey(url)] = cacheItem{
		html:       html,
		expiration: time.Now().Add(c.ttl),
	}
	return nil
}

// Size returns the current number of items in the cache
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

// Close stops the cleanup loop
func (c *MemoryCache) Close() error {
	c.once.Do(func() { close(c.done) })
	return nil
}

func (c *MemoryCache) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.removeExpired()
		}
	}
}

func (c *MemoryCache) removeExpired() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	for key, item := range c.data {
		if now.After(item.expiration) {
			delete(c.data, key)
		}
	}
}
