// Package db provides PostgreSQL connection, migration and transaction helpers.
//
// This package wraps [github.com/jackc/pgx/v5/pgxpool] to provide connection pooling,
// health checks, and database migrations with defaults suited to a scheduled job.
//
// # Features
//
//   - Connection pooling with configurable limits and timeouts
//   - Automatic retry logic with exponential backoff during startup
//   - Health check function compatible with standard health check interfaces
//   - Database migrations using [github.com/pressly/goose/v3]
//   - Environment-based configuration for deployment convenience
//
// # Configuration
//
// All settings are loaded from environment variables:
//
//	DATABASE_URL                - PostgreSQL connection URL (required)
//	DATABASE_MAX_OPEN_CONNS     - Maximum open connections (default: 5)
//	DATABASE_MIN_CONNS          - Minimum idle connections (default: 0)
//	DATABASE_HEALTHCHECK_PERIOD - Health check interval (default: 1m)
//	DATABASE_MAX_CONN_IDLE_TIME - Maximum connection idle time (default: 10m)
//	DATABASE_MAX_CONN_LIFETIME  - Maximum connection lifetime (default: 30m)
//	DATABASE_RETRY_ATTEMPTS     - Connection retry attempts (default: 3)
//	DATABASE_RETRY_INTERVAL     - Base retry interval (default: 2s)
//	DATABASE_MIGRATIONS_TABLE   - Migrations table name (default: schema_migrations)
//
// # Usage
//
//	pool, err := db.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
// # Health Checks
//
// [Healthcheck] returns a closure for the readiness endpoint:
//
//	checks := health.Checks{"database": db.Healthcheck(pool)}
//
// # Transactions
//
// The [WithTx] helper provides automatic transaction management with rollback on error:
//
//	err := db.WithTx(ctx, pool, func(tx pgx.Tx) error {
//		_, err := tx.Exec(ctx, "DELETE FROM dispatch_log WHERE run_date < $1", cutoff)
//		return err
//	})
//
// # Migrations
//
// Run database migrations using embedded SQL files:
//
//	//go:embed migrations/*.sql
//	var migrations embed.FS
//
//	sub, _ := fs.Sub(migrations, "migrations")
//	err := db.Migrate(ctx, pool, sub, "schema_migrations", logger)
//
// # Error Handling
//
// The package defines sentinel errors for common failure modes:
//
//   - [ErrFailedToParseDBConfig] - Invalid connection string format
//   - [ErrFailedToOpenDBConnection] - Connection failed after all retries
//   - [ErrHealthcheckFailed] - Database ping failed
//   - [ErrSetDialect] - Migration dialect configuration error
//   - [ErrApplyMigrations] - Migration execution failed
//
// Errors are wrapped using [errors.Join] to preserve the original error context.
package db
