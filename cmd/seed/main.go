// Command seed inserts a demo submission into the database.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/dmitrymomot/formintake/internal/db/migrations"
	"github.com/dmitrymomot/formintake/modules/submission"
	"github.com/dmitrymomot/formintake/pkg/config"
	"github.com/dmitrymomot/formintake/pkg/logger"
	"github.com/dmitrymomot/formintake/pkg/pg"
)

func main() {
	log := logger.New(logger.WithFormat(logger.FormatText))

	if err := run(context.Background(), log); err != nil {
		log.Error("seed failed", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger) error {
	var cfg pg.Config
	if err := config.Load(&cfg); err != nil {
		return err
	}

	pool, err := pg.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, migrations.FS, cfg, log); err != nil {
		return err
	}

	email, ipHash, userAgent := "demo@example.com", "seed-hash", "seed-script"
	demo := &submission.Submission{
		ID:    uuid.New(),
		Email: &email,
		Payload: map[string]any{
			"message": "Bonjour Terre",
			"fields":  []any{"nom", "email"},
		},
		Consent:   true,
		IPHash:    &ipHash,
		UserAgent: &userAgent,
	}
	if err := submission.NewPGStorage(pool).Create(ctx, demo); err != nil {
		return err
	}

	log.Info("seeded demo submission", logger.SubmissionID(demo.ID.String()))
	return nil
}
