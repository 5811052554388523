package ratelimit

import (
	"context"
	"time"
)

// Result describes the outcome of a rate limit check.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	// ResetAt is when the oldest request in the window expires and frees a
	// slot.
	ResetAt time.Time
}

// RetryAfter returns how long to wait before the next request is allowed,
// or 0 if the current request was allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed {
		return 0
	}
	return max(time.Until(r.ResetAt), 0)
}

// Limiter decides whether requests identified by a key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (*Result, error)
	AllowN(ctx context.Context, key string, n int) (*Result, error)
	// Status reports the current state without consuming capacity.
	Status(ctx context.Context, key string) (*Result, error)
	Reset(ctx context.Context, key string) error
}

// Usage is a snapshot of one key's sliding window.
type Usage struct {
	// Recorded is true when the requested timestamps were stored.
	Recorded bool
	// Count of timestamps inside the window after the operation.
	Count int64
	// Oldest timestamp still inside the window. Zero when the window is
	// empty.
	Oldest time.Time
}

// Store persists sliding window timestamps.
type Store interface {
	// RecordIfAllowed drops timestamps at or before now-window, then records
	// n timestamps at now only if the window would hold at most limit
	// entries. The check and the write are atomic.
	RecordIfAllowed(ctx context.Context, key string, now time.Time, window time.Duration, limit, n int) (Usage, error)

	// Count drops expired timestamps and reports the window without
	// recording anything.
	Count(ctx context.Context, key string, now time.Time, window time.Duration) (Usage, error)

	Delete(ctx context.Context, key string) error
}
