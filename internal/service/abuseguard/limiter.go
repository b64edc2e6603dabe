package abuseguard

import (
	"context"
	"sync"
	"time"
)

// SlidingWindowLimiter is an in-process AttemptLimiter keeping the attempt
// timestamps per key and evicting everything older than the window on each
// call. Suitable for single-instance deployments; multi-instance setups
// should use the redis-backed limiter instead.
type SlidingWindowLimiter struct {
	limit   int
	window  time.Duration
	mu      sync.Mutex
	entries map[string][]time.Time
	nowFunc func() time.Time
}

// NewSlidingWindowLimiter creates a limiter allowing limit attempts per key
// within the window.
func NewSlidingWindowLimiter(limit int, window time.Duration) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		limit:   limit,
		window:  window,
		entries: make(map[string][]time.Time),
		nowFunc: time.Now,
	}
}

// SetNowFunc overrides the clock in tests.
func (l *SlidingWindowLimiter) SetNowFunc(f func() time.Time) {
	l.nowFunc = f
}

// Allow records one attempt for key and reports whether it fits the budget.
// The attempt is counted even when rejected, so hammering the endpoint keeps
// the window full.
func (l *SlidingWindowLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.nowFunc()
	cutoff := now.Add(-l.window)

	kept := l.entries[key][:0]
	for _, t := range l.entries[key] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	allowed := len(kept) < l.limit
	kept = append(kept, now)
	l.entries[key] = kept

	return allowed, nil
}
