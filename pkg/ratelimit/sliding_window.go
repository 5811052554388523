package ratelimit

import (
	"context"
	"time"
)

// SlidingWindow allows at most limit requests per key within any span of
// window.
type SlidingWindow struct {
	store  Store
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewSlidingWindow(store Store, limit int, window time.Duration) (*SlidingWindow, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	if window <= 0 {
		return nil, ErrInvalidInterval
	}
	return &SlidingWindow{store: store, limit: limit, window: window, now: time.Now}, nil
}

func (sw *SlidingWindow) Allow(ctx context.Context, key string) (*Result, error) {
	return sw.AllowN(ctx, key, 1)
}

func (sw *SlidingWindow) AllowN(ctx context.Context, key string, n int) (*Result, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}
	n = max(n, 1)

	now := sw.now()
	usage, err := sw.store.RecordIfAllowed(ctx, key, now, sw.window, sw.limit, n)
	if err != nil {
		return nil, err
	}
	return sw.result(usage, usage.Recorded, now), nil
}

func (sw *SlidingWindow) Status(ctx context.Context, key string) (*Result, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}

	now := sw.now()
	usage, err := sw.store.Count(ctx, key, now, sw.window)
	if err != nil {
		return nil, err
	}
	return sw.result(usage, usage.Count < int64(sw.limit), now), nil
}

func (sw *SlidingWindow) Reset(ctx context.Context, key string) error {
	if key == "" {
		return ErrKeyRequired
	}
	return sw.store.Delete(ctx, key)
}

func (sw *SlidingWindow) result(u Usage, allowed bool, now time.Time) *Result {
	resetAt := now.Add(sw.window)
	if !u.Oldest.IsZero() {
		resetAt = u.Oldest.Add(sw.window)
	}
	return &Result{
		Allowed:   allowed,
		Limit:     sw.limit,
		Remaining: max(0, sw.limit-int(u.Count)),
		ResetAt:   resetAt,
	}
}
