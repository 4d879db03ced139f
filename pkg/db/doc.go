// Package db opens the SQL database behind the page store.
//
// Two backends are supported. Postgres goes through a
// [github.com/jackc/pgx/v5/pgxpool] pool with retry on startup and
// LISTEN/NOTIFY for cross-process cache invalidation. SQLite uses the pure
// Go [modernc.org/sqlite] driver and needs no external service, which makes
// it the default for development and tests.
//
// # Configuration
//
// All settings are loaded from environment variables:
//
//	DATABASE_DRIVER             - "postgres" or "sqlite" (default: sqlite)
//	DATABASE_CONN_URL           - Connection URL or SQLite path (default: :memory:)
//	DATABASE_MAX_OPEN_CONNS     - Maximum open connections (default: 10)
//	DATABASE_MIN_CONNS          - Minimum idle connections (default: 2)
//	DATABASE_HEALTHCHECK_PERIOD - Health check interval (default: 1m)
//	DATABASE_MAX_CONN_IDLE_TIME - Maximum connection idle time (default: 10m)
//	DATABASE_MAX_CONN_LIFETIME  - Maximum connection lifetime (default: 30m)
//	DATABASE_RETRY_ATTEMPTS     - Connection retry attempts (default: 3)
//	DATABASE_RETRY_INTERVAL     - Base retry interval (default: 5s)
//	DATABASE_MIGRATIONS_TABLE   - Migrations table name (default: schema_migrations)
//
// # Usage
//
//	var cfg db.Config
//	if err := env.Parse(&cfg); err != nil {
//		return err
//	}
//
//	conn, err := db.Open(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer conn.Close()
//
//	if err := db.Migrate(ctx, conn.DB, conn.Dialect, migrations, cfg.MigrationsTable, logger); err != nil {
//		return err
//	}
//
// Queries are written with "?" placeholders and passed through
// [Dialect.Rebind] before execution.
//
// # Transactions
//
//	err := db.WithTx(ctx, conn.DB, func(tx *sql.Tx) error {
//		_, err := tx.ExecContext(ctx, query, args...)
//		return err
//	})
//
// # Notifications
//
// [Notify] publishes on a postgres channel (a no-op on SQLite). [Listen]
// blocks on a pooled connection and calls back for each payload until the
// context is cancelled.
//
// # Error Handling
//
//   - [ErrFailedToParseDBConfig] - Invalid connection string format
//   - [ErrFailedToOpenDBConnection] - Connection failed after all retries
//   - [ErrHealthcheckFailed] - Database ping failed
//   - [ErrUnsupportedDialect] - Unknown driver name
//   - [ErrSetDialect] - Migration dialect configuration error
//   - [ErrApplyMigrations] - Migration execution failed
//   - [ErrListen] - LISTEN failed or the connection dropped
//
// Errors are wrapped using [errors.Join] to preserve the original error context.
package db
