package app

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/formintake/handler"
	"github.com/dmitrymomot/formintake/modules/submission"
	"github.com/dmitrymomot/formintake/pkg/apikey"
	"github.com/dmitrymomot/formintake/pkg/clientip"
	"github.com/dmitrymomot/formintake/pkg/cors"
	"github.com/dmitrymomot/formintake/pkg/csrf"
	"github.com/dmitrymomot/formintake/pkg/environment"
	"github.com/dmitrymomot/formintake/pkg/httpserver"
	"github.com/dmitrymomot/formintake/pkg/logger"
	"github.com/dmitrymomot/formintake/pkg/ratelimit"
	"github.com/dmitrymomot/formintake/pkg/requestid"
	"github.com/dmitrymomot/formintake/pkg/secureheaders"
)

const readinessTimeout = 2 * time.Second

var (
	ErrMissingStorage = errors.New("app: submission storage is required")
	ErrMissingLogger  = errors.New("app: logger is required")
	ErrMissingLimiter = errors.New("app: rate limit store is required")
)

// Deps are the collaborators built in main.
type Deps struct {
	Config  Config
	Logger  *slog.Logger
	Storage submission.Storage
	// RateLimitStore is owned by the caller, which closes it on shutdown.
	RateLimitStore ratelimit.Store
	// ReadinessChecks are probed by /health/ready.
	ReadinessChecks map[string]httpserver.Check
}

type csrfTokenResponse struct {
	CSRFToken string `json:"csrfToken"`
}

// NewRouter assembles the HTTP surface of the service.
func NewRouter(d Deps) (http.Handler, error) {
	if d.Logger == nil {
		return nil, ErrMissingLogger
	}
	if d.Storage == nil {
		return nil, ErrMissingStorage
	}
	if d.RateLimitStore == nil {
		return nil, ErrMissingLimiter
	}

	cfg := d.Config
	env := cfg.Environment()
	log := d.Logger
	respond := handler.NewResponder(log)
	errorHandler := handler.NewErrorHandler(log)

	protector, err := csrf.New(csrf.Config{
		Secret:   cfg.CSRFSecret,
		TokenTTL: cfg.CSRFTokenTTL,
		Secure:   env.IsProduction(),
	})
	if err != nil {
		return nil, err
	}

	limiter, err := ratelimit.NewSlidingWindow(d.RateLimitStore, cfg.RateLimitMax, cfg.RateLimitWindow)
	if err != nil {
		return nil, err
	}

	svc := submission.NewService(d.Storage, submission.Config{IPSalt: cfg.IPSalt}, log)
	api := submission.NewHTTPHandler(svc, submission.Guards{
		RateLimit: ratelimit.Middleware(limiter,
			ratelimit.WithKeyFunc(ratelimit.ByTrustedIP(cfg.TrustProxyHops)),
			ratelimit.WithOnLimitReached(func(w http.ResponseWriter, r *http.Request, _ *ratelimit.Result) {
				respond(w, r, handler.ErrTooManyRequests.WithMessage("too many requests, please try again later"))
			}),
			ratelimit.WithOnError(func(r *http.Request, err error) {
				log.WarnContext(r.Context(), "rate limiter unavailable, request allowed",
					logger.Component("ratelimit"),
					logger.Error(err),
				)
			}),
		),
		CSRF: csrf.Middleware(protector, csrf.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			respond(w, r, errors.Join(handler.ErrForbidden.WithMessage("invalid csrf token"), err))
		})),
		APIKey: apikey.Middleware(cfg.APIKey, apikey.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			respond(w, r, errors.Join(handler.ErrUnauthorized, err))
		})),
	}, errorHandler, submission.WithBodyLimit(cfg.BodyLimit))

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		clientip.Middleware,
		environment.Middleware(env),
		logger.Middleware(log, logger.WithSkipPaths("/health", "/health/ready")),
		middleware.Recoverer,
		secureheaders.Middleware(secureheaders.Config{DisableHSTS: !env.IsProduction()}),
		cors.Middleware(cors.Config{AllowedOrigins: cfg.CORSOrigins}, cors.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			respond(w, r, errors.Join(handler.ErrForbidden.WithMessage("origin not allowed"), err))
		})),
	)

	r.Get("/csrf", handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response {
		tok, err := protector.Token(ctx.ResponseWriter(), ctx.Request())
		if err != nil {
			return handler.JSONError(err)
		}
		return handler.JSON(csrfTokenResponse{CSRFToken: tok})
	}, handler.WithErrorHandler[handler.Context, struct{}](errorHandler)))

	r.Get("/health", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(log, readinessTimeout, d.ReadinessChecks))

	r.Mount("/api", submission.Router(submission.RouterOptions{
		Submissions: api,
		Public:      api.Public(),
	}))

	if info, err := os.Stat(cfg.StaticDir); err == nil && info.IsDir() {
		r.Handle("/*", http.FileServer(http.Dir(cfg.StaticDir)))
	} else if cfg.StaticDir != "" {
		log.Debug("static directory not found, static files disabled",
			slog.String("dir", cfg.StaticDir),
		)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respond(w, r, handler.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respond(w, r, handler.HTTPError{Code: http.StatusMethodNotAllowed, Key: "method_not_allowed"})
	})

	return r, nil
}
