// Package cors applies an origin allow-list. Header negotiation is delegated
// to rs/cors. Requests carrying an Origin outside the list are rejected
// outright instead of being served without CORS headers.
package cors

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/rs/cors"
)

var ErrOriginNotAllowed = errors.New("cors: origin not allowed")

type Config struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	ExposedHeaders []string
	// MaxAge is the preflight cache lifetime in seconds.
	MaxAge int
}

type Option func(*options)

type options struct {
	errorHandler func(w http.ResponseWriter, r *http.Request, err error)
}

// WithErrorHandler replaces the default plain-text 403 response for
// disallowed origins.
func WithErrorHandler(fn func(w http.ResponseWriter, r *http.Request, err error)) Option {
	return func(o *options) {
		if fn != nil {
			o.errorHandler = fn
		}
	}
}

// Middleware lets requests without an Origin header through, rejects
// disallowed origins and answers preflight requests with 204. Credentials
// are allowed.
func Middleware(cfg Config, opts ...Option) func(http.Handler) http.Handler {
	o := &options{
		errorHandler: func(w http.ResponseWriter, _ *http.Request, _ error) {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		},
	}
	for _, opt := range opts {
		opt(o)
	}

	allowed := normalize(cfg.AllowedOrigins)
	c := cors.New(cors.Options{
		AllowedOrigins:       allowed,
		AllowedMethods:       withDefault(cfg.AllowedMethods, []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}),
		AllowedHeaders:       withDefault(cfg.AllowedHeaders, []string{"Content-Type", "X-API-Key", "X-CSRF-Token", "CSRF-Token", "X-XSRF-Token", "X-Request-ID"}),
		ExposedHeaders:       withDefault(cfg.ExposedHeaders, []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"}),
		AllowCredentials:     true,
		MaxAge:               cfg.MaxAge,
		OptionsSuccessStatus: http.StatusNoContent,
	})

	return func(next http.Handler) http.Handler {
		wrapped := c.Handler(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && !slices.Contains(allowed, strings.TrimRight(origin, "/")) {
				o.errorHandler(w, r, ErrOriginNotAllowed)
				return
			}
			wrapped.ServeHTTP(w, r)
		})
	}
}

func normalize(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, origin := range origins {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin != "" && !slices.Contains(out, origin) {
			out = append(out, origin)
		}
	}
	return out
}

func withDefault(v, def []string) []string {
	if len(v) == 0 {
		return def
	}
	return v
}
