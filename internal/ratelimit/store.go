package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Window is the state of one fixed counting window after an increment.
type Window struct {
	Count int
	Start time.Time
}

// CounterStore records requests per (tier, key). Implementations must
// linearize increments for the same bucket so two concurrent requests
// cannot both observe a free slot and together exceed the limit.
type CounterStore interface {
	// Incr counts one request against (tier, key), starting a fresh
	// window when none exists or the current one has elapsed, and
	// returns the resulting window state.
	Incr(tier Tier, key string, window time.Duration, now time.Time) Window
}

type bucketKey struct {
	tier Tier
	key  string
}

type bucket struct {
	count    int
	start    time.Time
	window   time.Duration
	lastSeen time.Time
}

// MemoryStore is a mutex-guarded in-process CounterStore. Buckets idle
// longer than their own window are evicted by Cleanup.
type MemoryStore struct {
	mu      sync.Mutex
	buckets map[bucketKey]*bucket
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{buckets: make(map[bucketKey]*bucket)}
}

// Incr implements CounterStore. Check and increment happen in one
// critical section.
func (s *MemoryStore) Incr(tier Tier, key string, window time.Duration, now time.Time) Window {
	bk := bucketKey{tier: tier, key: key}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.buckets[bk]
	if !ok || now.Sub(b.start) >= window {
		b = &bucket{count: 0, start: now, window: window}
		s.buckets[bk] = b
	}
	b.count++
	b.window = window
	b.lastSeen = now

	return Window{Count: b.count, Start: b.start}
}

// Cleanup evicts buckets that have been idle longer than their window.
func (s *MemoryStore) Cleanup(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for bk, b := range s.buckets {
		if now.Sub(b.lastSeen) > b.window {
			delete(s.buckets, bk)
		}
	}
}

// Len reports the number of live buckets.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buckets)
}

// StartJanitor runs Cleanup every interval until ctx is canceled.
func (s *MemoryStore) StartJanitor(ctx context.Context, every time.Duration) {
	if every <= 0 {
		return
	}
	t := time.NewTicker(every)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-t.C:
				s.Cleanup(now)
			}
		}
	}()
}
