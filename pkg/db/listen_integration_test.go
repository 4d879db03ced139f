//go:build integration

package db_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reek/pkg/db"
)

func TestListen_Postgres(t *testing.T) {
	url := os.Getenv("DATABASE_CONN_URL")
	if url == "" {
		t.Skip("DATABASE_CONN_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := db.Open(ctx, db.Config{
		Driver:           db.Postgres,
		ConnectionString: url,
		MaxOpenConns:     4,
		RetryAttempts:    1,
	})
	require.NoError(t, err)
	defer conn.Close()

	got := make(chan string, 1)
	listenCtx, stop := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() {
		done <- db.Listen(listenCtx, conn.Pool, "reek_test", func(p string) { got <- p })
	}()

	require.Eventually(t, func() bool {
		_ = db.Notify(ctx, conn, "reek_test", "hello")
		select {
		case p := <-got:
			return p == "hello"
		default:
			return false
		}
	}, 5*time.Second, 100*time.Millisecond)

	stop()
	require.NoError(t, <-done)
}
