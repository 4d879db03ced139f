package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Notify sends payload on a postgres notification channel.
func Notify(ctx context.Context, db *DB, channel, payload string) error {
	if db.Dialect != Postgres {
		return nil
	}
	_, err := db.ExecContext(ctx, "SELECT pg_notify($1, $2)", channel, payload)
	return err
}

// Listen holds a pool connection on channel and calls fn for each
// notification until ctx is done. It returns nil on cancellation.
func Listen(ctx context.Context, pool *pgxpool.Pool, channel string, fn func(payload string)) error {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return errors.Join(ErrListen, err)
	}
	defer conn.Release()

	ident := pgx.Identifier{channel}.Sanitize()
	if _, err := conn.Exec(ctx, "LISTEN "+ident); err != nil {
		return errors.Join(ErrListen, err)
	}
	defer func() {
		// The connection returns to the pool; stop listening on it first.
		_, _ = conn.Exec(context.WithoutCancel(ctx), "UNLISTEN "+ident)
	}()

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errors.Join(ErrListen, fmt.Errorf("channel %s: %w", channel, err))
		}
		fn(n.Payload)
	}
}
