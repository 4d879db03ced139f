package pages

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/reek/pkg/cache"
)

// CachedStore caches candidate lookups of a Store. Any write event of the
// underlying store clears the cache before it is passed on to subscribers
// of the CachedStore, so they never observe stale candidates. A lookup
// that overlaps a write is returned to its caller but never cached.
type CachedStore struct {
	Store

	gen    atomic.Uint64
	hub    Hub
	cache  cache.Cache[[]Page]
	logger *slog.Logger
	cancel func()
	ttl    time.Duration
}

// CachedStoreOption configures a CachedStore.
type CachedStoreOption func(*CachedStore)

// WithCandidateTTL sets how long candidate lookups are cached. Zero uses
// the cache default; negative never expires.
func WithCandidateTTL(ttl time.Duration) CachedStoreOption {
	return func(s *CachedStore) {
		s.ttl = ttl
	}
}

// WithCacheLogger sets the logger used to report cache failures.
func WithCacheLogger(l *slog.Logger) CachedStoreOption {
	return func(s *CachedStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewCachedStore wraps store with c.
func NewCachedStore(store Store, c cache.Cache[[]Page], opts ...CachedStoreOption) *CachedStore {
	s := &CachedStore{
		Store:  store,
		cache:  c,
		logger: defaultOptions().logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cancel = store.Subscribe(func(e Event) {
		s.gen.Add(1)
		if err := s.cache.Clear(context.Background()); err != nil {
			s.logger.Error("failed to clear page candidate cache", slog.Any("error", err))
		}
		s.hub.Publish(e)
	})
	return s
}

// Candidates implements Store. Keys carry the write generation, so a
// lookup started before a write cannot answer one started after it.
func (s *CachedStore) Candidates(ctx context.Context, paths []string) ([]Page, error) {
	gen := s.gen.Load()
	key := "candidates:" + strconv.FormatUint(gen, 10) + ":" + strings.Join(paths, "\n")
	return cache.GetOrSet(ctx, s.cache, key, func(ctx context.Context) ([]Page, time.Duration, error) {
		pages, err := s.Store.Candidates(ctx, paths)
		if err == nil && s.gen.Load() != gen {
			return pages, cache.NoStore, nil
		}
		return pages, s.ttl, err
	})
}

// Subscribe implements Store.
func (s *CachedStore) Subscribe(fn func(Event)) func() {
	return s.hub.Subscribe(fn)
}

// Close detaches from the underlying store. The cache is left open.
func (s *CachedStore) Close() error {
	s.cancel()
	return nil
}
