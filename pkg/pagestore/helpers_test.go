package pagestore_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reek/pkg/db"
	"github.com/dmitrymomot/reek/pkg/logger"
	"github.com/dmitrymomot/reek/pkg/pages"
	"github.com/dmitrymomot/reek/pkg/pagestore"
)

func openDB(t *testing.T) *db.DB {
	t.Helper()

	ctx := context.Background()
	conn, err := db.Open(ctx, db.Config{Driver: db.SQLite, ConnectionString: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, pagestore.Migrate(ctx, conn, "schema_migrations", logger.NewNope()))
	return conn
}

func newStore(t *testing.T, paths ...string) *pagestore.Store {
	t.Helper()

	s := pagestore.New(openDB(t))
	for _, p := range paths {
		require.NoError(t, s.Create(context.Background(), &pages.Page{Path: p, ViewName: "page", Title: p}))
	}
	return s
}

func paths(ps []pages.Page) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Path
	}
	return out
}

// recorder collects published events.
type recorder struct {
	mu     sync.Mutex
	events []pages.Event
}

func record(t *testing.T, s pages.Store) *recorder {
	t.Helper()

	r := &recorder{}
	cancel := s.Subscribe(func(e pages.Event) {
		r.mu.Lock()
		r.events = append(r.events, e)
		r.mu.Unlock()
	})
	t.Cleanup(cancel)
	return r
}

func (r *recorder) kinds() []pages.EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]pages.EventKind, len(r.events))
	for i, e := range r.events {
		out[i] = e.Kind
	}
	return out
}

func (r *recorder) last() pages.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}
