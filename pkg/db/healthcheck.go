package db

import (
	"context"
	"errors"
)

// Healthcheck returns a readiness check that pings the database.
func Healthcheck(db *DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

// Shutdown returns a shutdown hook that closes the database.
func Shutdown(db *DB) func(ctx context.Context) error {
	return func(context.Context) error {
		return db.Close()
	}
}
