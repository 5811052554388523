package clientip_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formintake/pkg/clientip"
)

func TestGetIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		forwarded  string
		remoteAddr string
		expected   string
	}{
		{name: "remote addr with port", remoteAddr: "192.0.2.10:51234", expected: "192.0.2.10"},
		{name: "remote addr without port", remoteAddr: "192.0.2.10", expected: "192.0.2.10"},
		{name: "ipv6 remote addr", remoteAddr: "[2001:db8::1]:443", expected: "2001:db8::1"},
		{name: "first forwarded entry", forwarded: "203.0.113.5, 10.0.0.1", remoteAddr: "10.0.0.2:80", expected: "203.0.113.5"},
		{name: "forwarded entry with spaces", forwarded: "  203.0.113.6 ", remoteAddr: "10.0.0.2:80", expected: "203.0.113.6"},
		{name: "invalid forwarded falls back", forwarded: "not-an-ip, 203.0.113.7", remoteAddr: "10.0.0.2:80", expected: "10.0.0.2"},
		{name: "garbage remote addr", remoteAddr: "garbage", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set(clientip.HeaderForwardedFor, tt.forwarded)
			}

			assert.Equal(t, tt.expected, clientip.GetIP(req))
		})
	}
}

func TestGetTrustedIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		forwarded []string
		hops      int
		expected  string
	}{
		{name: "no proxies trusted", forwarded: []string{"203.0.113.5"}, hops: 0, expected: "192.0.2.1"},
		{name: "entry appended by one proxy", forwarded: []string{"203.0.113.5, 198.51.100.9"}, hops: 1, expected: "198.51.100.9"},
		{name: "two proxies", forwarded: []string{"203.0.113.5, 198.51.100.9, 10.0.0.3"}, hops: 2, expected: "198.51.100.9"},
		{name: "repeated headers", forwarded: []string{"203.0.113.5", "198.51.100.9"}, hops: 1, expected: "198.51.100.9"},
		{name: "fewer entries than hops", forwarded: []string{"198.51.100.9"}, hops: 3, expected: "198.51.100.9"},
		{name: "invalid trusted entry", forwarded: []string{"203.0.113.5, bogus"}, hops: 1, expected: "192.0.2.1"},
		{name: "no header", hops: 1, expected: "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "192.0.2.1:4000"
			for _, v := range tt.forwarded {
				req.Header.Add(clientip.HeaderForwardedFor, v)
			}

			assert.Equal(t, tt.expected, clientip.GetTrustedIP(req, tt.hops))
		})
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var got string
	h := clientip.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = clientip.GetIPFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.20:1234"
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "198.51.100.20", got)
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	extract := clientip.LoggerExtractor()

	_, ok := extract(context.Background())
	assert.False(t, ok)

	attr, ok := extract(clientip.SetIPToContext(context.Background(), "192.0.2.1"))
	assert.True(t, ok)
	assert.Equal(t, "client_ip", attr.Key)
	assert.Equal(t, "192.0.2.1", attr.Value.String())
}
