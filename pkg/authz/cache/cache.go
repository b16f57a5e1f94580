// Package cache implements the two-tier permission cache: an in-process
// map guarded by an RWMutex and a shared store entry that survives
// process restarts. Entries carry the serialized effective permission
// set; callers own the encoding.
package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fieldgate/fieldgate/pkg/metrics"
	"github.com/fieldgate/fieldgate/pkg/store"
)

// ComputeFunc produces a fresh serialized permission set on cache miss.
type ComputeFunc func(ctx context.Context) ([]byte, error)

// Cache is safe for concurrent use. Duplicate concurrent misses may
// both recompute; the race is accepted, recomputation is cheap.
type Cache struct {
	shared store.CacheStore
	ttl    time.Duration

	mu    sync.RWMutex
	local map[string]*store.CacheEntry

	version atomic.Int64
}

// New builds a Cache over the shared tier with the given entry TTL.
func New(shared store.CacheStore, ttl time.Duration) *Cache {
	c := &Cache{
		shared: shared,
		ttl:    ttl,
		local:  make(map[string]*store.CacheEntry),
	}
	// Seed the version counter so restarts keep it increasing.
	c.version.Store(time.Now().UnixNano())
	return c
}

func (c *Cache) localGet(userID string, now time.Time) *store.CacheEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.local[userID]
	if !ok || now.After(entry.ExpiresAt) {
		// Expired entries are skipped, not evicted; CleanupExpired
		// sweeps them.
		return nil
	}
	return entry
}

func (c *Cache) localPut(entry *store.CacheEntry) {
	c.mu.Lock()
	c.local[entry.UserID] = entry
	c.mu.Unlock()
}

// GetOrCompute returns the cached entry for userID, reading through the
// local tier, then the shared tier, then compute. Computed entries are
// written through both tiers before returning.
func (c *Cache) GetOrCompute(ctx context.Context, userID string, compute ComputeFunc) (*store.CacheEntry, error) {
	now := time.Now().UTC()

	if entry := c.localGet(userID, now); entry != nil {
		metrics.PermissionCacheHit("local")
		return entry, nil
	}

	if c.shared != nil {
		entry, err := c.shared.GetEntry(ctx, userID)
		if err == nil && entry != nil && now.Before(entry.ExpiresAt) {
			metrics.PermissionCacheHit("shared")
			c.localPut(entry)
			return entry, nil
		}
		// Shared-tier read errors fall through to recompute.
	}

	metrics.PermissionCacheMiss()
	payload, err := compute(ctx)
	if err != nil {
		return nil, err
	}

	entry := &store.CacheEntry{
		UserID:     userID,
		Payload:    payload,
		Version:    c.version.Add(1),
		ComputedAt: now,
		ExpiresAt:  now.Add(c.ttl),
	}

	c.localPut(entry)
	if c.shared != nil {
		// A failed shared write degrades to local-only caching.
		_ = c.shared.PutEntry(ctx, entry)
	}

	return entry, nil
}

// Invalidate removes the user's entry from both tiers.
func (c *Cache) Invalidate(ctx context.Context, userID string) error {
	c.mu.Lock()
	delete(c.local, userID)
	c.mu.Unlock()

	if c.shared != nil {
		return c.shared.DeleteEntry(ctx, userID)
	}
	return nil
}

// CleanupExpired sweeps expired entries from both tiers. This is the
// only proactive eviction; normal reads just check-and-skip.
func (c *Cache) CleanupExpired(ctx context.Context) (int64, error) {
	now := time.Now().UTC()

	var removed int64
	c.mu.Lock()
	for userID, entry := range c.local {
		if now.After(entry.ExpiresAt) {
			delete(c.local, userID)
			removed++
		}
	}
	c.mu.Unlock()

	if c.shared != nil {
		sharedRemoved, err := c.shared.DeleteExpired(ctx, now)
		if err != nil {
			return removed, err
		}
		removed += sharedRemoved
	}
	return removed, nil
}

// TTL returns the configured entry lifetime.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}
