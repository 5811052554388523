package secureheaders_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formintake/pkg/secureheaders"
)

func serve(cfg secureheaders.Config) *httptest.ResponseRecorder {
	h := secureheaders.Middleware(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	return rec
}

func TestMiddlewareDefaults(t *testing.T) {
	t.Parallel()

	rec := serve(secureheaders.Config{})
	h := rec.Header()

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, secureheaders.DefaultCSP, h.Get("Content-Security-Policy"))
	assert.Equal(t, "nosniff", h.Get("X-Content-Type-Options"))
	assert.Equal(t, "SAMEORIGIN", h.Get("X-Frame-Options"))
	assert.Equal(t, "no-referrer", h.Get("Referrer-Policy"))
	assert.Equal(t, "same-origin", h.Get("Cross-Origin-Opener-Policy"))
	assert.Equal(t, "same-origin", h.Get("Cross-Origin-Resource-Policy"))
	assert.Contains(t, h.Get("Strict-Transport-Security"), "max-age=15552000")
	assert.Contains(t, h.Get("Strict-Transport-Security"), "includeSubDomains")
	assert.Equal(t, "0", h.Get("X-XSS-Protection"))
	assert.Equal(t, "off", h.Get("X-DNS-Prefetch-Control"))
	assert.Equal(t, "none", h.Get("X-Permitted-Cross-Domain-Policies"))
}

func TestMiddlewareOverrides(t *testing.T) {
	t.Parallel()

	rec := serve(secureheaders.Config{ContentSecurityPolicy: "default-src 'none'", DisableHSTS: true})
	assert.Equal(t, "default-src 'none'", rec.Header().Get("Content-Security-Policy"))
	assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))
}
