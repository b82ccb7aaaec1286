package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryCache is the in-process fallback store. Entries carry explicit expiry
// timestamps and are pruned lazily on read plus on a periodic sweep.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	done    chan struct{}
	now     func() time.Time
}

// NewMemoryCache creates an in-process TTL cache.
func NewMemoryCache() *MemoryCache {
	mc := &MemoryCache{
		entries: make(map[string]memoryEntry),
		done:    make(chan struct{}),
		now:     time.Now,
	}
	go mc.sweep(time.Minute)
	return mc
}

func (mc *MemoryCache) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-mc.done:
			return
		case <-ticker.C:
			now := mc.now()
			mc.mu.Lock()
			for k, e := range mc.entries {
				if now.After(e.expiresAt) {
					delete(mc.entries, k)
				}
			}
			mc.mu.Unlock()
		}
	}
}

// Set stores a key-value pair with TTL.
func (mc *MemoryCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.entries[key] = memoryEntry{value: value, expiresAt: mc.now().Add(ttl)}
	return nil
}

// Get retrieves a value by key, honoring expiry.
func (mc *MemoryCache) Get(_ context.Context, key string) (string, error) {
	mc.mu.RLock()
	entry, ok := mc.entries[key]
	mc.mu.RUnlock()
	if !ok || mc.now().After(entry.expiresAt) {
		return "", ErrMiss
	}
	return entry.value, nil
}

// Delete removes keys.
func (mc *MemoryCache) Delete(_ context.Context, keys ...string) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	for _, key := range keys {
		delete(mc.entries, key)
	}
	return nil
}

// HealthCheck always succeeds for the in-process store.
func (mc *MemoryCache) HealthCheck(_ context.Context) error {
	return nil
}

// Close stops the background sweeper.
func (mc *MemoryCache) Close() error {
	close(mc.done)
	return nil
}
