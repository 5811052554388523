package csrf

import "net/http"

type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	errorHandler func(w http.ResponseWriter, r *http.Request, err error)
}

// WithErrorHandler replaces the default plain-text 403 response.
func WithErrorHandler(fn func(w http.ResponseWriter, r *http.Request, err error)) MiddlewareOption {
	return func(c *middlewareConfig) {
		if fn != nil {
			c.errorHandler = fn
		}
	}
}

// Middleware rejects unsafe requests that fail Protector.Verify.
func Middleware(p *Protector, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{
		errorHandler: func(w http.ResponseWriter, _ *http.Request, _ error) {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isSafeMethod(r.Method) {
				next.ServeHTTP(w, r)
				return
			}
			if err := p.Verify(r); err != nil {
				cfg.errorHandler(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}
