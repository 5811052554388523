package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formintake/pkg/cookie"
)

var (
	secretA = strings.Repeat("a", 32)
	secretB = strings.Repeat("b", 32)
)

// roundTrip copies the Set-Cookie headers of rec into a fresh request.
func roundTrip(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := cookie.New(nil)
	assert.ErrorIs(t, err, cookie.ErrNoSecret)

	_, err = cookie.New([]string{"", ""})
	assert.ErrorIs(t, err, cookie.ErrNoSecret)

	_, err = cookie.New([]string{"short"})
	assert.ErrorIs(t, err, cookie.ErrSecretTooShort)

	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)
	assert.NotNil(t, m)
}

func TestSignedRoundTrip(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secretA}, cookie.WithSecure(true))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	m.SetSigned(rec, "_csrf", "client-secret")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, "/", c.Path)
	assert.NotContains(t, c.Value, "client-secret")

	got, err := m.GetSigned(roundTrip(rec), "_csrf")
	require.NoError(t, err)
	assert.Equal(t, "client-secret", got)
}

func TestGetSignedFailures(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)

	_, err = m.GetSigned(httptest.NewRequest(http.MethodGet, "/", nil), "_csrf")
	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)

	tests := []struct {
		name  string
		value string
		err   error
	}{
		{"no separator", "abc", cookie.ErrInvalidFormat},
		{"bad value encoding", "!!|abc", cookie.ErrInvalidFormat},
		{"bad signature", "dmFsdWU=|c2ln", cookie.ErrInvalidSignature},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(&http.Cookie{Name: "_csrf", Value: tt.value})
			_, err := m.GetSigned(req, "_csrf")
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestSecretRotation(t *testing.T) {
	t.Parallel()

	oldM, err := cookie.New([]string{secretA})
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	oldM.SetSigned(rec, "k", "v")

	rotated, err := cookie.New([]string{secretB, secretA})
	require.NoError(t, err)
	got, err := rotated.GetSigned(roundTrip(rec), "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	onlyNew, err := cookie.New([]string{secretB})
	require.NoError(t, err)
	_, err = onlyNew.GetSigned(roundTrip(rec), "k")
	assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	m.Delete(rec, "k")
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}
