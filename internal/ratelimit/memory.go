package ratelimit

import (
	"context"
	"sync"
	"time"
)

type windowCount struct {
	count       int
	windowStart time.Time
}

// MemoryLimiter is a process-local fixed-window limiter used when Redis is
// not configured. Counts reset when a key's window elapses.
type MemoryLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	clients map[string]*windowCount

	now func() time.Time
}

// NewMemory creates a limiter allowing at most limit requests per window per key.
func NewMemory(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		limit:   limit,
		window:  window,
		clients: make(map[string]*windowCount),
		now:     time.Now,
	}
}

// Allow atomically increments the key's window counter and checks the limit.
func (l *MemoryLimiter) Allow(ctx context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	wc, exists := l.clients[key]
	if !exists || now.Sub(wc.windowStart) >= l.window {
		l.clients[key] = &windowCount{count: 1, windowStart: now}
		return true, nil
	}
	if wc.count >= l.limit {
		return false, nil
	}
	wc.count++
	return true, nil
}

// Cleanup drops entries whose window has long elapsed. Call periodically to
// keep the map from accumulating one entry per client ever seen.
func (l *MemoryLimiter) Cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, wc := range l.clients {
		if now.Sub(wc.windowStart) >= 2*l.window {
			delete(l.clients, key)
		}
	}
}

// StartJanitor runs Cleanup on the given interval until ctx is cancelled.
func (l *MemoryLimiter) StartJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				l.Cleanup()
			}
		}
	}()
}
