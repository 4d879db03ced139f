package pagestore

import (
	"context"
	"embed"
	"io/fs"
	"log/slog"

	"github.com/dmitrymomot/reek/pkg/db"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrations returns the embedded migration files.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrations, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

// Migrate applies the page store schema.
func Migrate(ctx context.Context, conn *db.DB, table string, log *slog.Logger) error {
	return db.Migrate(ctx, conn.DB, conn.Dialect, Migrations(), table, log)
}
