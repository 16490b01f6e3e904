package catalog

import (
	"sync"
	"time"
)

type cacheEntry[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache はTTL付きの一覧キャッシュ。管理画面の更新で Invalidate する。
type Cache[V any] struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry[V]
}

func NewCache[V any](ttl time.Duration) *Cache[V] {
	return &Cache[V]{ttl: ttl, now: time.Now, entries: map[string]cacheEntry[V]{}}
}

// Get は期限内の値を返す
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	if c == nil || c.ttl <= 0 {
		return zero, false
	}
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || c.now().After(e.expiresAt) {
		return zero, false
	}
	return e.value, true
}

func (c *Cache[V]) Set(key string, v V) {
	if c == nil || c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[key] = cacheEntry[V]{value: v, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

// Invalidate は全件を捨てる
func (c *Cache[V]) Invalidate() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.entries = map[string]cacheEntry[V]{}
	c.mu.Unlock()
}
