// Package cookie sets and reads HMAC-signed cookies. Several secrets may be
// configured: the first signs, all of them verify, which allows rotation.
package cookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"
)

const minSecretLength = 32

var (
	ErrNoSecret         = errors.New("cookie: no secret configured")
	ErrSecretTooShort   = errors.New("cookie: secret too short")
	ErrInvalidSignature = errors.New("cookie: invalid signature")
	ErrCookieNotFound   = errors.New("cookie: not found")
	ErrInvalidFormat    = errors.New("cookie: invalid format")
)

type Manager struct {
	secrets  [][]byte
	defaults Options
}

// New returns a Manager. Defaults are Path "/", HttpOnly and SameSite=Lax.
func New(secrets []string, opts ...Option) (*Manager, error) {
	secrets = slices.DeleteFunc(slices.Clone(secrets), func(s string) bool { return s == "" })
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}

	keys := make([][]byte, len(secrets))
	for i, s := range secrets {
		if len(s) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d chars, need at least %d", ErrSecretTooShort, i, len(s), minSecretLength)
		}
		keys[i] = []byte(s)
	}

	defaults := Options{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode}
	return &Manager{secrets: keys, defaults: applyOptions(defaults, opts)}, nil
}

func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) {
	o := applyOptions(m.defaults, opts)
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     o.Path,
		Domain:   o.Domain,
		MaxAge:   o.MaxAge,
		Secure:   o.Secure,
		HttpOnly: o.HttpOnly,
		SameSite: o.SameSite,
	})
}

func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}
	return c.Value, nil
}

func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Path:     m.defaults.Path,
		Domain:   m.defaults.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   m.defaults.Secure,
		HttpOnly: m.defaults.HttpOnly,
		SameSite: m.defaults.SameSite,
	})
}

func (m *Manager) SetSigned(w http.ResponseWriter, name, value string, opts ...Option) {
	m.Set(w, name, m.sign(value), opts...)
}

func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	signed, err := m.Get(r, name)
	if err != nil {
		return "", err
	}
	return m.verify(signed)
}

// sign encodes value as base64url(value) "|" base64url(mac). The cookie
// name is not part of the MAC.
func (m *Manager) sign(value string) string {
	return base64.URLEncoding.EncodeToString([]byte(value)) + "|" +
		base64.URLEncoding.EncodeToString(mac(m.secrets[0], []byte(value)))
}

func (m *Manager) verify(signed string) (string, error) {
	encValue, encSig, ok := strings.Cut(signed, "|")
	if !ok {
		return "", ErrInvalidFormat
	}
	value, err := base64.URLEncoding.DecodeString(encValue)
	if err != nil {
		return "", ErrInvalidFormat
	}
	sig, err := base64.URLEncoding.DecodeString(encSig)
	if err != nil {
		return "", ErrInvalidFormat
	}

	for _, secret := range m.secrets {
		if hmac.Equal(sig, mac(secret, value)) {
			return string(value), nil
		}
	}
	return "", ErrInvalidSignature
}

func mac(secret, value []byte) []byte {
	h := hmac.New(sha256.New, secret)
	h.Write(value)
	return h.Sum(nil)
}
