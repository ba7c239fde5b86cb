// Package pg manages the PostgreSQL connection pool used by the grant
// stores: environment-driven configuration, connection with startup
// retries, goose schema migrations, and a health check helper.
//
// Typical startup:
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil { ... }
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil { ... }
//
// The error helpers (IsNotFoundError, IsDuplicateKeyError, ...) classify
// driver errors so store implementations do not inspect SQLSTATE codes
// themselves.
package pg
