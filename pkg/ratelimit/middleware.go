package ratelimit

import (
	"math"
	"net/http"
	"strconv"
)

const (
	HeaderLimit      = "X-RateLimit-Limit"
	HeaderRemaining  = "X-RateLimit-Remaining"
	HeaderReset      = "X-RateLimit-Reset"
	HeaderRetryAfter = "Retry-After"
)

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	keyFunc        KeyFunc
	onLimitReached func(w http.ResponseWriter, r *http.Request, result *Result)
	onError        func(r *http.Request, err error)
	skipFunc       func(r *http.Request) bool
}

// WithKeyFunc replaces the default ByIP key function.
func WithKeyFunc(fn KeyFunc) MiddlewareOption {
	return func(c *middlewareConfig) {
		if fn != nil {
			c.keyFunc = fn
		}
	}
}

// WithOnLimitReached replaces the default plain-text 429 response. Rate
// limit headers and Retry-After are already set when fn runs.
func WithOnLimitReached(fn func(w http.ResponseWriter, r *http.Request, result *Result)) MiddlewareOption {
	return func(c *middlewareConfig) {
		if fn != nil {
			c.onLimitReached = fn
		}
	}
}

// WithOnError observes limiter errors. The request still proceeds.
func WithOnError(fn func(r *http.Request, err error)) MiddlewareOption {
	return func(c *middlewareConfig) {
		c.onError = fn
	}
}

func WithSkipFunc(fn func(r *http.Request) bool) MiddlewareOption {
	return func(c *middlewareConfig) {
		c.skipFunc = fn
	}
}

// Middleware enforces limiter per request key and reports the window in
// X-RateLimit-* headers.
func Middleware(limiter Limiter, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	if limiter == nil {
		panic("ratelimit.Middleware: limiter is required")
	}

	cfg := &middlewareConfig{
		keyFunc: ByIP(),
		onLimitReached: func(w http.ResponseWriter, _ *http.Request, _ *Result) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.skipFunc != nil && cfg.skipFunc(r) {
				next.ServeHTTP(w, r)
				return
			}

			key := cfg.keyFunc(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			result, err := limiter.Allow(r.Context(), key)
			if err != nil {
				if cfg.onError != nil {
					cfg.onError(r, err)
				}
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Set(HeaderLimit, strconv.Itoa(result.Limit))
			h.Set(HeaderRemaining, strconv.Itoa(result.Remaining))
			h.Set(HeaderReset, strconv.FormatInt(result.ResetAt.Unix(), 10))

			if !result.Allowed {
				retryAfter := int(math.Ceil(result.RetryAfter().Seconds()))
				h.Set(HeaderRetryAfter, strconv.Itoa(max(retryAfter, 1)))
				cfg.onLimitReached(w, r, result)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
