package ratelimit

import (
	"context"
	"slices"
	"sync"
	"time"
)

// MemoryStore keeps sliding windows in process memory. A background loop
// drops keys whose windows are empty. Call Close to stop it.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*window

	cleanupInterval time.Duration
	stop            chan struct{}
	stopOnce        sync.Once
}

type window struct {
	stamps []time.Time
	span   time.Duration
}

type MemoryStoreOption func(*MemoryStore)

func WithCleanupInterval(interval time.Duration) MemoryStoreOption {
	return func(s *MemoryStore) {
		if interval > 0 {
			s.cleanupInterval = interval
		}
	}
}

func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{
		windows:         make(map[string]*window),
		cleanupInterval: time.Minute,
		stop:            make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	go s.cleanupLoop()
	return s
}

func (s *MemoryStore) RecordIfAllowed(_ context.Context, key string, now time.Time, span time.Duration, limit, n int) (Usage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.windows[key]
	if !ok {
		w = &window{stamps: make([]time.Time, 0, min(limit, 128))}
		s.windows[key] = w
	}
	w.span = span
	w.prune(now)

	recorded := len(w.stamps)+n <= limit
	if recorded {
		for range n {
			w.stamps = append(w.stamps, now)
		}
	}
	return w.usage(recorded), nil
}

func (s *MemoryStore) Count(_ context.Context, key string, now time.Time, span time.Duration) (Usage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.windows[key]
	if !ok {
		return Usage{}, nil
	}
	w.span = span
	w.prune(now)
	return w.usage(false), nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.windows, key)
	s.mu.Unlock()
	return nil
}

// Close stops the cleanup loop. It is safe to call more than once.
func (s *MemoryStore) Close() error {
	s.stopOnce.Do(func() { close(s.stop) })
	return nil
}

func (s *MemoryStore) cleanupLoop() {
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.cleanup(now)
		}
	}
}

func (s *MemoryStore) cleanup(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, w := range s.windows {
		w.prune(now)
		if len(w.stamps) == 0 {
			delete(s.windows, key)
		}
	}
}

// prune drops timestamps at or before now-span. Callers read the clock
// before taking the lock, so stamps may arrive slightly out of order.
func (w *window) prune(now time.Time) {
	cutoff := now.Add(-w.span)
	w.stamps = slices.DeleteFunc(w.stamps, func(ts time.Time) bool {
		return !ts.After(cutoff)
	})
}

func (w *window) usage(recorded bool) Usage {
	u := Usage{Recorded: recorded, Count: int64(len(w.stamps))}
	if len(w.stamps) > 0 {
		u.Oldest = slices.MinFunc(w.stamps, time.Time.Compare)
	}
	return u
}
