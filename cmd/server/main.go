package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"os"

	"github.com/dmitrymomot/formintake/internal/app"
	"github.com/dmitrymomot/formintake/internal/db/migrations"
	"github.com/dmitrymomot/formintake/modules/submission"
	"github.com/dmitrymomot/formintake/pkg/clientip"
	"github.com/dmitrymomot/formintake/pkg/config"
	"github.com/dmitrymomot/formintake/pkg/environment"
	"github.com/dmitrymomot/formintake/pkg/httpserver"
	"github.com/dmitrymomot/formintake/pkg/logger"
	"github.com/dmitrymomot/formintake/pkg/pg"
	"github.com/dmitrymomot/formintake/pkg/ratelimit"
	"github.com/dmitrymomot/formintake/pkg/redis"
	"github.com/dmitrymomot/formintake/pkg/requestid"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("server stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		appCfg    app.Config
		pgCfg     pg.Config
		redisCfg  redis.Config
		serverCfg httpserver.Config
	)
	for _, load := range []func() error{
		func() error { return config.Load(&appCfg) },
		func() error { return config.Load(&pgCfg) },
		func() error { return config.Load(&redisCfg) },
		func() error { return config.Load(&serverCfg) },
	} {
		if err := load(); err != nil {
			return err
		}
	}

	opts := []logger.Option{
		logger.WithEnvironment(appCfg.Environment(), appCfg.Name),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			clientip.LoggerExtractor(),
			environment.LoggerExtractor(),
		),
	}
	if appCfg.LogLevel != "" {
		opts = append(opts, logger.WithLevel(logger.ParseLevel(appCfg.LogLevel)))
	}
	log := logger.New(opts...)
	logger.SetAsDefault(log)

	if appCfg.CSRFSecret == "" {
		secret := make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return err
		}
		appCfg.CSRFSecret = hex.EncodeToString(secret)
		log.Warn("CSRF_SECRET is not set, using a random secret; tokens will not survive a restart",
			logger.Component("csrf"),
		)
	}

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if pgCfg.AutoMigrate {
		if err := pg.Migrate(ctx, pool, migrations.FS, pgCfg, log); err != nil {
			return err
		}
	}

	checks := map[string]httpserver.Check{"postgres": pg.Healthcheck(pool)}
	serverOpts := []httpserver.Option{httpserver.WithLogger(log)}

	var limitStore ratelimit.Store
	if redisCfg.Enabled() {
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		limitStore = ratelimit.NewRedisStore(client)
		checks["redis"] = redis.Healthcheck(client)
		serverOpts = append(serverOpts, httpserver.WithStopHook(func(context.Context) error {
			return client.Close()
		}))
		log.Info("rate limiter uses redis", logger.Component("ratelimit"))
	} else {
		memStore := ratelimit.NewMemoryStore()
		limitStore = memStore
		serverOpts = append(serverOpts, httpserver.WithStopHook(func(context.Context) error {
			return memStore.Close()
		}))
	}

	router, err := app.NewRouter(app.Deps{
		Config:          appCfg,
		Logger:          log,
		Storage:         submission.NewPGStorage(pool),
		RateLimitStore:  limitStore,
		ReadinessChecks: checks,
	})
	if err != nil {
		return err
	}

	srv := httpserver.NewFromConfig(serverCfg, serverOpts...)
	return srv.Run(ctx, router)
}
