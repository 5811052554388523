package logger

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// Redacted replaces the value of sensitive headers in access logs.
const Redacted = "[REDACTED]"

var defaultRedactedHeaders = []string{
	"Authorization",
	"Cookie",
	"Set-Cookie",
	"X-Api-Key",
	"X-Csrf-Token",
	"Csrf-Token",
	"X-Xsrf-Token",
}

// MiddlewareOption configures the access log middleware.
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	redact    map[string]struct{}
	skipPaths map[string]struct{}
}

// WithRedactedHeaders adds headers whose values are never logged.
func WithRedactedHeaders(names ...string) MiddlewareOption {
	return func(c *middlewareConfig) {
		for _, n := range names {
			c.redact[http.CanonicalHeaderKey(n)] = struct{}{}
		}
	}
}

// WithSkipPaths disables access logging for exact request paths.
func WithSkipPaths(paths ...string) MiddlewareOption {
	return func(c *middlewareConfig) {
		for _, p := range paths {
			c.skipPaths[p] = struct{}{}
		}
	}
}

// Middleware logs one record per request after the handler returns.
// Records are written at Info below 400, Warn below 500 and Error otherwise.
func Middleware(log *slog.Logger, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{
		redact:    make(map[string]struct{}, len(defaultRedactedHeaders)),
		skipPaths: make(map[string]struct{}),
	}
	WithRedactedHeaders(defaultRedactedHeaders...)(cfg)
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, skip := cfg.skipPaths[r.URL.Path]; skip {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			level := slog.LevelInfo
			switch {
			case status >= http.StatusInternalServerError:
				level = slog.LevelError
			case status >= http.StatusBadRequest:
				level = slog.LevelWarn
			}

			log.LogAttrs(r.Context(), level, "http request",
				Component("http"),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				Status(status),
				slog.Int("bytes", ww.BytesWritten()),
				Duration(time.Since(start)),
				slog.String("user_agent", r.UserAgent()),
				Group("headers", RedactHeaders(r.Header, cfg.redact)...),
			)
		})
	}
}

// RedactHeaders renders headers as attributes, replacing the values of any
// header named in redact with Redacted. Keys in redact must be canonical.
func RedactHeaders(h http.Header, redact map[string]struct{}) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(h))
	for name, values := range h {
		key := http.CanonicalHeaderKey(name)
		if _, ok := redact[key]; ok {
			attrs = append(attrs, slog.String(key, Redacted))
			continue
		}
		attrs = append(attrs, slog.String(key, strings.Join(values, ", ")))
	}
	return attrs
}
