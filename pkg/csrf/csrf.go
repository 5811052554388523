package csrf

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/crypto/hkdf"

	"github.com/dmitrymomot/formintake/pkg/cookie"
	"github.com/dmitrymomot/formintake/pkg/token"
)

const (
	DefaultCookieName = "_csrf"
	DefaultTokenTTL   = 2 * time.Hour

	clientSecretSize = 32
	saltSize         = 8
	cookieKeyInfo    = "csrf cookie signing key"
)

// HeaderNames lists the request headers a token is read from, in order.
var HeaderNames = []string{"X-CSRF-Token", "CSRF-Token", "X-XSRF-Token"}

type Config struct {
	// Secret is the server-side key material. The cookie signing key is
	// derived from it with HKDF-SHA256.
	Secret     string
	TokenTTL   time.Duration
	CookieName string
	// Secure marks the secret cookie Secure. Enable outside development.
	Secure bool
}

type payload struct {
	Salt     string `json:"salt"`
	IssuedAt int64  `json:"iat"`
}

// Protector issues and verifies tokens.
type Protector struct {
	cookies    *cookie.Manager
	cookieName string
	ttl        time.Duration
	now        func() time.Time
}

func New(cfg Config) (*Protector, error) {
	if cfg.Secret == "" {
		return nil, ErrSecretRequired
	}

	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(cfg.Secret), nil, []byte(cookieKeyInfo)), key); err != nil {
		return nil, fmt.Errorf("derive csrf cookie key: %w", err)
	}

	cookies, err := cookie.New(
		[]string{hex.EncodeToString(key)},
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(http.SameSiteLaxMode),
		cookie.WithSecure(cfg.Secure),
	)
	if err != nil {
		return nil, err
	}

	p := &Protector{
		cookies:    cookies,
		cookieName: cfg.CookieName,
		ttl:        cfg.TokenTTL,
		now:        time.Now,
	}
	if p.cookieName == "" {
		p.cookieName = DefaultCookieName
	}
	if p.ttl <= 0 {
		p.ttl = DefaultTokenTTL
	}
	return p, nil
}

// Token returns a fresh token for the client. When the request carries no
// valid secret cookie, a new secret is generated and set on w.
func (p *Protector) Token(w http.ResponseWriter, r *http.Request) (string, error) {
	secret, err := p.cookies.GetSigned(r, p.cookieName)
	if err != nil {
		secret, err = randomString(clientSecretSize)
		if err != nil {
			return "", err
		}
		p.cookies.SetSigned(w, p.cookieName, secret)
	}

	salt, err := randomString(saltSize)
	if err != nil {
		return "", err
	}
	return token.GenerateToken(payload{Salt: salt, IssuedAt: p.now().Unix()}, []byte(secret))
}

// Verify checks the request's token against its secret cookie.
func (p *Protector) Verify(r *http.Request) error {
	secret, err := p.cookies.GetSigned(r, p.cookieName)
	if err != nil {
		return errors.Join(ErrMissingSecret, err)
	}

	tok := tokenFromRequest(r)
	if tok == "" {
		return ErrMissingToken
	}

	pl, err := token.ParseToken[payload](tok, []byte(secret))
	if err != nil {
		return errors.Join(ErrInvalidToken, err)
	}
	if pl.Salt == "" || pl.IssuedAt <= 0 {
		return ErrInvalidToken
	}

	issued := time.Unix(pl.IssuedAt, 0)
	if p.now().After(issued.Add(p.ttl)) {
		return ErrTokenExpired
	}
	return nil
}

func tokenFromRequest(r *http.Request) string {
	for _, name := range HeaderNames {
		if v := r.Header.Get(name); v != "" {
			return v
		}
	}
	return ""
}

func randomString(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate csrf randomness: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
