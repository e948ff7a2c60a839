package ratelimit

import (
	"sync"
	"testing"
	"time"
)

func TestMemoryStore_IncrStartsWindow(t *testing.T) {
	s := NewMemoryStore()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	w := s.Incr(TierEmail, "k", time.Hour, now)
	if w.Count != 1 {
		t.Errorf("expected count=1, got %d", w.Count)
	}
	if !w.Start.Equal(now) {
		t.Errorf("expected start=now, got %v", w.Start)
	}
}

func TestMemoryStore_IncrAccumulatesWithinWindow(t *testing.T) {
	s := NewMemoryStore()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	s.Incr(TierEmail, "k", time.Hour, now)
	w := s.Incr(TierEmail, "k", time.Hour, now.Add(30*time.Minute))
	if w.Count != 2 {
		t.Errorf("expected count=2, got %d", w.Count)
	}
	if !w.Start.Equal(now) {
		t.Errorf("window start must not move, got %v", w.Start)
	}
}

func TestMemoryStore_LazyResetOnExpiry(t *testing.T) {
	s := NewMemoryStore()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	s.Incr(TierEmail, "k", time.Hour, now)
	s.Incr(TierEmail, "k", time.Hour, now)

	later := now.Add(time.Hour)
	w := s.Incr(TierEmail, "k", time.Hour, later)
	if w.Count != 1 {
		t.Errorf("expected fresh window with count=1, got %d", w.Count)
	}
	if !w.Start.Equal(later) {
		t.Errorf("expected start=later, got %v", w.Start)
	}
}

func TestMemoryStore_CleanupEvictsIdleBuckets(t *testing.T) {
	s := NewMemoryStore()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	s.Incr(TierEmail, "idle", time.Hour, now)
	s.Incr(TierEmail, "busy", time.Hour, now)
	s.Incr(TierEmail, "busy", time.Hour, now.Add(90*time.Minute))

	s.Cleanup(now.Add(100 * time.Minute))
	if got := s.Len(); got != 1 {
		t.Errorf("expected 1 bucket after cleanup, got %d", got)
	}
}

func TestMemoryStore_CleanupKeepsActiveBuckets(t *testing.T) {
	s := NewMemoryStore()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	s.Incr(TierHealth, "k", time.Minute, now)
	s.Cleanup(now.Add(30 * time.Second))
	if got := s.Len(); got != 1 {
		t.Errorf("bucket within its window must survive cleanup, got len=%d", got)
	}
}

func TestMemoryStore_ConcurrentIncrLinearized(t *testing.T) {
	s := NewMemoryStore()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	const n = 200
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Incr(TierGeneral, "k", time.Hour, now)
		}()
	}
	wg.Wait()

	w := s.Incr(TierGeneral, "k", time.Hour, now)
	if w.Count != n+1 {
		t.Errorf("expected count=%d after %d concurrent increments, got %d", n+1, n, w.Count)
	}
}

func TestMemoryStore_TierAndKeyFormDistinctBuckets(t *testing.T) {
	s := NewMemoryStore()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	s.Incr(TierEmail, "k", time.Hour, now)
	w := s.Incr(TierGeneral, "k", time.Hour, now)
	if w.Count != 1 {
		t.Errorf("buckets must be keyed by (tier, key), got count=%d", w.Count)
	}
}
