// Package ratelimit implements a sliding window rate limiter with pluggable
// storage and an HTTP middleware.
//
// The window is tracked as individual request timestamps, so a client that
// spent its budget regains capacity one request at a time as old timestamps
// age out. MemoryStore keeps timestamps in process; RedisStore keeps them in a
// sorted set so several instances share one budget.
//
//	store := ratelimit.NewMemoryStore()
//	defer store.Close()
//
//	limiter, err := ratelimit.NewSlidingWindow(store, 100, 15*time.Minute)
//	if err != nil { ... }
//
//	r.Use(ratelimit.Middleware(limiter, ratelimit.WithKeyFunc(ratelimit.ByTrustedIP(1))))
//
// The middleware fails open: a store error lets the request through.
package ratelimit
