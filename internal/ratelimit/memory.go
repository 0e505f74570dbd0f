package ratelimit

import (
	"context"
	"sync"
	"time"
)

const (
	// DefaultLimit is the default number of requests allowed per window
	DefaultLimit = 15
	// DefaultWindow is the default counting window duration
	DefaultWindow = 60 * time.Second
	// DefaultSweepInterval is how often the janitor scans for stale entries
	DefaultSweepInterval = time.Minute
)

type entry struct {
	windowStart time.Time
	count       int
}

// MemoryStore is an in-process fixed-window store. Entries for clients that
// go quiet are evicted by the janitor once they are older than twice the
// window, so memory stays proportional to the active client set.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*entry
	limit   int
	window  time.Duration
	now     func() time.Time
}

// NewMemoryStore creates a memory store with the given limit and window.
// Non-positive values fall back to the defaults.
func NewMemoryStore(limit int, window time.Duration) *MemoryStore {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &MemoryStore{
		entries: make(map[string]*entry),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// Allow counts a request for clientID. It never returns an error.
func (s *MemoryStore) Allow(_ context.Context, clientID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e, ok := s.entries[clientID]
	if !ok || now.Sub(e.windowStart) > s.window {
		s.entries[clientID] = &entry{windowStart: now, count: 1}
		return true, nil
	}

	e.count++
	return e.count <= s.limit, nil
}

// Len returns the number of tracked clients.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// StartJanitor evicts stale entries every interval until ctx is cancelled.
func (s *MemoryStore) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *MemoryStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-2 * s.window)
	for id, e := range s.entries {
		if e.windowStart.Before(cutoff) {
			delete(s.entries, id)
		}
	}
}
