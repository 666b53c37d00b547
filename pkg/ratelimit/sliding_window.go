// Package ratelimit provides an in-process sliding window rate limiter keyed
// by client address. The per-key windows are the only mutable shared state in
// the server, so all access is serialized behind per-window mutexes.
package ratelimit

import (
	"sync"
	"time"
)

// SlidingWindow counts requests per key within a moving time window.
type SlidingWindow struct {
	mu         sync.Mutex
	windows    map[string]*window
	limit      int
	windowSize time.Duration

	// now is swappable for tests.
	now func() time.Time
}

type window struct {
	mu       sync.Mutex
	requests []time.Time
}

// NewSlidingWindow creates a limiter allowing `limit` requests per key within
// `windowSize`.
func NewSlidingWindow(limit int, windowSize time.Duration) *SlidingWindow {
	return &SlidingWindow{
		windows:    make(map[string]*window),
		limit:      limit,
		windowSize: windowSize,
		now:        time.Now,
	}
}

// Result reports the outcome of a single Allow call.
type Result struct {
	Allowed   bool
	Remaining int
	// Reset is when the oldest counted request leaves the window.
	Reset time.Time
}

// Allow records a request for key if the limit permits, and reports the
// remaining budget either way. Concurrent calls for the same key are safe;
// they serialize on the key's window.
func (l *SlidingWindow) Allow(key string) Result {
	l.mu.Lock()
	w, ok := l.windows[key]
	if !ok {
		w = &window{}
		l.windows[key] = w
	}
	l.mu.Unlock()

	w.mu.Lock()
	defer w.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.windowSize)

	// Expire requests that left the window.
	valid := w.requests[:0]
	for _, t := range w.requests {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}
	w.requests = valid

	if len(w.requests) >= l.limit {
		return Result{
			Allowed:   false,
			Remaining: 0,
			Reset:     w.requests[0].Add(l.windowSize),
		}
	}

	w.requests = append(w.requests, now)
	return Result{
		Allowed:   true,
		Remaining: l.limit - len(w.requests),
		Reset:     w.requests[0].Add(l.windowSize),
	}
}

// Limit returns the configured per-window request budget.
func (l *SlidingWindow) Limit() int {
	return l.limit
}

// Window returns the configured window size.
func (l *SlidingWindow) Window() time.Duration {
	return l.windowSize
}

// Reset clears the window for a key.
func (l *SlidingWindow) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.windows, key)
}

// Sweep drops windows that have been idle longer than the window size. Called
// periodically from a background goroutine to bound memory.
func (l *SlidingWindow) Sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.windowSize)
	for key, w := range l.windows {
		w.mu.Lock()
		idle := len(w.requests) == 0 || !w.requests[len(w.requests)-1].After(cutoff)
		w.mu.Unlock()
		if idle {
			delete(l.windows, key)
		}
	}
}

// SetClock overrides the limiter's clock; tests only.
func (l *SlidingWindow) SetClock(now func() time.Time) {
	l.now = now
}
