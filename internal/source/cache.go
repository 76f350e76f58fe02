package source

import (
	"context"
	"sync"
	"time"
)

// Cached keeps successful fetches of another source in memory for a fixed TTL.
// Failures are never cached so a recovered origin is picked up on the next call.
type Cached struct {
	src Source
	ttl time.Duration
	now func() time.Time

	mu    sync.RWMutex
	items map[string]cacheEntry
}

type cacheEntry struct {
	body    []byte
	expires time.Time
}

// NewCached wraps src. A non-positive ttl returns src unchanged.
func NewCached(src Source, ttl time.Duration) Source {
	if ttl <= 0 {
		return src
	}
	return &Cached{src: src, ttl: ttl, now: time.Now, items: map[string]cacheEntry{}}
}

// Fetch implements Source.
func (c *Cached) Fetch(ctx context.Context, name string) ([]byte, error) {
	now := c.now()
	c.mu.RLock()
	entry, ok := c.items[name]
	c.mu.RUnlock()
	if ok && now.Before(entry.expires) {
		return clone(entry.body), nil
	}

	b, err := c.src.Fetch(ctx, name)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.items[name] = cacheEntry{body: clone(b), expires: now.Add(c.ttl)}
	c.mu.Unlock()
	return b, nil
}

// Purge drops every cached entry.
func (c *Cached) Purge() {
	c.mu.Lock()
	c.items = map[string]cacheEntry{}
	c.mu.Unlock()
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
