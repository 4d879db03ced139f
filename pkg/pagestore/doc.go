// Package pagestore persists the page tree and page contents in SQL.
//
// The same queries run on Postgres and SQLite; see package db for opening
// either. Migrations are embedded and applied with Migrate.
//
//	conn, _ := db.Open(ctx, cfg)
//	_ = pagestore.Migrate(ctx, conn, cfg.MigrationsTable, logger)
//
//	store := pagestore.New(conn, pagestore.WithLogger(logger))
//	go store.Listen(ctx) // postgres only; returns at once on SQLite
//
//	resolver := pages.NewResolver(store, registry)
//
// Every write publishes a pages.Event to local subscribers. On Postgres the
// write is also broadcast with NOTIFY; Listen turns notifications from
// other processes into pages.EventInvalidated so their caches are dropped
// here as well.
//
// Seed loads pages and contents from YAML, creating or updating by path.
package pagestore
