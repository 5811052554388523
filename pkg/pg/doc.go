// Package pg opens a pgx connection pool with retries, applies goose
// migrations from an fs.FS and classifies PostgreSQL errors.
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil { ... }
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, migrations.FS, cfg, log); err != nil { ... }
package pg
