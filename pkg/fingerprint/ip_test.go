package fingerprint_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formintake/pkg/fingerprint"
)

func TestHashIP(t *testing.T) {
	t.Parallel()

	t.Run("deterministic for same ip and salt", func(t *testing.T) {
		t.Parallel()

		a, ok := fingerprint.HashIP("203.0.113.7", "pepper")
		assert.True(t, ok)
		b, _ := fingerprint.HashIP("203.0.113.7", "pepper")
		assert.Equal(t, a, b)
		assert.Len(t, a, 64)
	})

	t.Run("never equals raw input", func(t *testing.T) {
		t.Parallel()

		for _, ip := range []string{"127.0.0.1", "::1", "2001:db8::1", "10.0.0.1"} {
			hash, ok := fingerprint.HashIP(ip, "salt")
			assert.True(t, ok)
			assert.NotEqual(t, ip, hash)
			assert.NotContains(t, hash, ip)
		}
	})

	t.Run("salt changes digest", func(t *testing.T) {
		t.Parallel()

		a, _ := fingerprint.HashIP("127.0.0.1", "one")
		b, _ := fingerprint.HashIP("127.0.0.1", "two")
		assert.NotEqual(t, a, b)
	})

	t.Run("trims before hashing", func(t *testing.T) {
		t.Parallel()

		a, _ := fingerprint.HashIP("  127.0.0.1\t", "salt")
		b, _ := fingerprint.HashIP("127.0.0.1", "salt")
		assert.Equal(t, a, b)
	})

	t.Run("known vector", func(t *testing.T) {
		t.Parallel()

		// sha256("abc")
		hash, ok := fingerprint.HashIP("a", "bc")
		assert.True(t, ok)
		assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", hash)
	})

	t.Run("empty and whitespace yield no hash", func(t *testing.T) {
		t.Parallel()

		for _, ip := range []string{"", "   ", "\n\t"} {
			hash, ok := fingerprint.HashIP(ip, "salt")
			assert.False(t, ok)
			assert.Empty(t, hash)
		}
	})
}

func TestRequestIP(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.1")

	got, ok := fingerprint.RequestIP(req, "salt")
	want, _ := fingerprint.HashIP("198.51.100.1", "salt")

	assert.True(t, ok)
	assert.Equal(t, want, got)
}
