// Package apikey guards routes with a static shared key sent in the
// X-API-Key header.
package apikey

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"net/http"
)

const Header = "X-API-Key"

var (
	ErrMissingKey = errors.New("apikey: header missing")
	ErrInvalidKey = errors.New("apikey: key does not match")
)

type Option func(*config)

type config struct {
	errorHandler func(w http.ResponseWriter, r *http.Request, err error)
}

// WithErrorHandler replaces the default plain-text 401 response.
func WithErrorHandler(fn func(w http.ResponseWriter, r *http.Request, err error)) Option {
	return func(c *config) {
		if fn != nil {
			c.errorHandler = fn
		}
	}
}

// Check compares the request key with expected in constant time. Both values
// are hashed first so the comparison does not leak the key length.
func Check(r *http.Request, expected string) error {
	got := r.Header.Get(Header)
	if got == "" {
		return ErrMissingKey
	}
	a := sha256.Sum256([]byte(got))
	b := sha256.Sum256([]byte(expected))
	if expected == "" || subtle.ConstantTimeCompare(a[:], b[:]) != 1 {
		return ErrInvalidKey
	}
	return nil
}

// Middleware rejects requests whose X-API-Key does not match key. An empty
// key rejects everything.
func Middleware(key string, opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{
		errorHandler: func(w http.ResponseWriter, _ *http.Request, _ error) {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := Check(r, key); err != nil {
				cfg.errorHandler(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
