package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver
)

// DB is an open database handle. Pool is set for postgres only and is what
// LISTEN/NOTIFY runs on.
type DB struct {
	*sql.DB
	Pool    *pgxpool.Pool
	Dialect Dialect
}

// Close releases the handle and the underlying pool.
func (d *DB) Close() error {
	err := d.DB.Close()
	if d.Pool != nil {
		d.Pool.Close()
	}
	return err
}

// Open connects to the backend selected by cfg.Driver.
func Open(ctx context.Context, cfg Config) (*DB, error) {
	switch cfg.Driver {
	case Postgres:
		pool, err := Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		// The database/sql view shares the pool's connections.
		return &DB{DB: stdlib.OpenDBFromPool(pool), Pool: pool, Dialect: Postgres}, nil
	case SQLite:
		sqlDB, err := OpenSQLite(ctx, cfg.ConnectionString)
		if err != nil {
			return nil, err
		}
		return &DB{DB: sqlDB, Dialect: SQLite}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDialect, cfg.Driver)
	}
}

// Connect establishes a PostgreSQL connection pool with retry logic.
// Attempt n waits n*RetryInterval before the next one.
func Connect(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	connConfig, err := pgxpool.ParseConfig(cfg.ConnectionString)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseDBConfig, err)
	}
	connConfig.MaxConns = cfg.MaxOpenConns
	connConfig.MinConns = cfg.MinConns
	connConfig.HealthCheckPeriod = cfg.HealthCheckPeriod
	connConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	connConfig.MaxConnLifetime = cfg.MaxConnLifetime

	var lastErr error
	attempts := max(cfg.RetryAttempts, 1)
	for i := range attempts {
		pool, err := pgxpool.NewWithConfig(ctx, connConfig)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return pool, nil
			}
			pool.Close()
		}
		lastErr = err

		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrFailedToOpenDBConnection, ctx.Err())
		case <-time.After(time.Duration(i+1) * cfg.RetryInterval):
		}
	}

	return nil, errors.Join(ErrFailedToOpenDBConnection, lastErr)
}

// OpenSQLite opens a SQLite database with foreign keys enabled. ":memory:"
// opens a private in-memory database that lives as long as the handle.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	dsn := "file:" + path + "?_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)"
	if path == ":memory:" || path == "" {
		dsn = "file::memory:?_pragma=foreign_keys(ON)"
	}

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Join(ErrFailedToOpenDBConnection, err)
	}
	// SQLite serialises writers; one connection also keeps a
	// private in-memory database alive and shared.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, errors.Join(ErrFailedToOpenDBConnection, err)
	}
	return sqlDB, nil
}
