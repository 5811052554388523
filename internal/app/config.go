package app

import (
	"time"

	"github.com/dmitrymomot/formintake/pkg/environment"
)

// Config is the application level configuration, loaded once at startup.
type Config struct {
	Name     string `env:"APP_NAME" envDefault:"formintake"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL"`

	APIKey string `env:"API_KEY,required"`
	IPSalt string `env:"IP_SALT,required"`

	CORSOrigins []string `env:"CORS_ORIGIN" envSeparator:"," envDefault:"http://localhost:5173"`
	StaticDir   string   `env:"STATIC_DIR" envDefault:"public"`

	RateLimitMax    int           `env:"RATE_LIMIT_MAX" envDefault:"100"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"15m"`
	BodyLimit       int64         `env:"BODY_LIMIT" envDefault:"102400"`
	// TrustProxyHops is the number of reverse proxies in front of the
	// server. Rate limiting keys on the address the outermost of them saw.
	TrustProxyHops int `env:"TRUST_PROXY_HOPS" envDefault:"1"`

	// CSRFSecret signs the CSRF cookie. When empty the server generates a
	// random one, which invalidates issued tokens on every restart.
	CSRFSecret   string        `env:"CSRF_SECRET"`
	CSRFTokenTTL time.Duration `env:"CSRF_TOKEN_TTL" envDefault:"2h"`
}

func (c Config) Environment() environment.Environment {
	return environment.Parse(c.Env)
}
