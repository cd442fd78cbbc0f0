package server

import (
	"sync"
	"time"

	"github.com/prithvisense/thermal-monitor/internal/pipeline"
)

// SnapshotCache holds the most recent pipeline result for the serving layer.
// The pipeline itself is stateless per run; "load once" lives here, with a TTL
// so a changed source file is eventually picked up and explicit invalidation
// for when the caller knows it changed. The source identity is fixed at
// construction, so a single entry suffices; a different source means a
// different cache.
type SnapshotCache struct {
	runner    SnapshotRunner
	ttl       time.Duration
	mutex     sync.RWMutex
	result    *pipeline.Result
	fetchedAt time.Time
	refreshes int64
}

// NewSnapshotCache creates a cache over the given runner. A non-positive ttl
// means every Get runs the pipeline.
func NewSnapshotCache(runner SnapshotRunner, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{
		runner: runner,
		ttl:    ttl,
	}
}

// Get returns the cached result, refreshing it when absent or stale. The
// returned result's slices are shared and must be treated as read-only.
func (c *SnapshotCache) Get() pipeline.Result {
	c.mutex.RLock()
	if c.result != nil && time.Since(c.fetchedAt) < c.ttl {
		result := *c.result
		c.mutex.RUnlock()
		return result
	}
	c.mutex.RUnlock()

	c.mutex.Lock()
	defer c.mutex.Unlock()

	// Another caller may have refreshed while we waited for the lock.
	if c.result != nil && time.Since(c.fetchedAt) < c.ttl {
		return *c.result
	}

	result := c.runner.Run()
	c.result = &result
	c.fetchedAt = time.Now()
	c.refreshes++
	return result
}

// Invalidate discards the cached result so the next Get runs the pipeline.
func (c *SnapshotCache) Invalidate() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.result = nil
	c.fetchedAt = time.Time{}
}

// CacheStats contains statistics about the snapshot cache
type CacheStats struct {
	Refreshes int64     `json:"refreshes"`
	FetchedAt time.Time `json:"fetched_at,omitempty"`
	Cached    bool      `json:"cached"`
}

// Stats returns statistics about the cache
func (c *SnapshotCache) Stats() CacheStats {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return CacheStats{
		Refreshes: c.refreshes,
		FetchedAt: c.fetchedAt,
		Cached:    c.result != nil,
	}
}
