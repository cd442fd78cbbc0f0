package server

import (
	"sync"
	"testing"
	"time"

	"github.com/prithvisense/thermal-monitor/internal/models"
	"github.com/prithvisense/thermal-monitor/internal/pipeline"
)

// countingRunner is a SnapshotRunner that counts pipeline runs.
type countingRunner struct {
	mutex sync.Mutex
	runs  int
}

func (r *countingRunner) Run() pipeline.Result {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.runs++
	return pipeline.Result{
		Snapshots:   pipeline.DeriveSnapshot(nil, models.Catalog{"A"}),
		Source:      pipeline.SourceSynthetic,
		GeneratedAt: time.Now(),
	}
}

func (r *countingRunner) count() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.runs
}

func TestSnapshotCache_GetCaches(t *testing.T) {
	runner := &countingRunner{}
	cache := NewSnapshotCache(runner, time.Hour)

	for i := 0; i < 5; i++ {
		result := cache.Get()
		if len(result.Snapshots) != 1 {
			t.Fatalf("len(Snapshots) = %d, want 1", len(result.Snapshots))
		}
	}

	if runner.count() != 1 {
		t.Errorf("pipeline ran %d times, want 1 (cached)", runner.count())
	}
}

func TestSnapshotCache_Invalidate(t *testing.T) {
	runner := &countingRunner{}
	cache := NewSnapshotCache(runner, time.Hour)

	cache.Get()
	cache.Invalidate()
	cache.Get()

	if runner.count() != 2 {
		t.Errorf("pipeline ran %d times, want 2 after invalidation", runner.count())
	}
}

func TestSnapshotCache_ZeroTTLAlwaysRefreshes(t *testing.T) {
	runner := &countingRunner{}
	cache := NewSnapshotCache(runner, 0)

	cache.Get()
	cache.Get()
	cache.Get()

	if runner.count() != 3 {
		t.Errorf("pipeline ran %d times, want 3 with zero TTL", runner.count())
	}
}

func TestSnapshotCache_Stats(t *testing.T) {
	runner := &countingRunner{}
	cache := NewSnapshotCache(runner, time.Hour)

	stats := cache.Stats()
	if stats.Cached || stats.Refreshes != 0 {
		t.Errorf("fresh cache stats = %+v", stats)
	}

	cache.Get()
	stats = cache.Stats()
	if !stats.Cached || stats.Refreshes != 1 {
		t.Errorf("after Get stats = %+v, want cached with 1 refresh", stats)
	}

	cache.Invalidate()
	stats = cache.Stats()
	if stats.Cached {
		t.Error("Cached should be false after Invalidate")
	}
	if stats.Refreshes != 1 {
		t.Errorf("Refreshes = %d, want 1 (invalidate does not refresh)", stats.Refreshes)
	}
}

func TestSnapshotCache_ConcurrentGet(t *testing.T) {
	runner := &countingRunner{}
	cache := NewSnapshotCache(runner, time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cache.Get()
		}()
	}
	wg.Wait()

	if runner.count() != 1 {
		t.Errorf("pipeline ran %d times under concurrency, want 1", runner.count())
	}
}
