package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/reek/pkg/cache"
	"github.com/dmitrymomot/reek/pkg/db"
	"github.com/dmitrymomot/reek/pkg/markdown"
	"github.com/dmitrymomot/reek/pkg/pages"
	"github.com/dmitrymomot/reek/pkg/pagestore"
	"github.com/dmitrymomot/reek/pkg/redis"
	"github.com/dmitrymomot/reek/pkg/views"
)

// site holds the page store, its content store and the view registry of
// one process.
type site struct {
	cfg      Config
	log      *slog.Logger
	conn     *db.DB
	store    *pagestore.Store
	contents *pagestore.Contents
	registry *pages.Registry
	redis    goredis.UniversalClient
	closers  []func() error
}

func openSite(ctx context.Context, cfg Config, log *slog.Logger) (*site, error) {
	conn, err := db.Open(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}

	s := &site{
		cfg:      cfg,
		log:      log,
		conn:     conn,
		store:    pagestore.New(conn, pagestore.WithLogger(log)),
		contents: pagestore.NewContents(conn),
		closers:  []func() error{conn.Close},
	}
	s.registry = newRegistry(s.contents)

	if cfg.AutoMigrate {
		if err := s.migrate(ctx); err != nil {
			return nil, errors.Join(err, s.Close())
		}
	}
	return s, nil
}

func newRegistry(contents views.ContentStore) *pages.Registry {
	reg := pages.NewRegistry()
	reg.MustRegister(
		views.NewPageView(),
		views.NewContentView(contents, markdown.New()),
		newsApplication(),
	)
	return reg
}

func (s *site) migrate(ctx context.Context) error {
	return pagestore.Migrate(ctx, s.conn, s.cfg.DB.MigrationsTable, s.log)
}

func (s *site) seed(ctx context.Context, path string) (pagestore.SeedResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return pagestore.SeedResult{}, err
	}
	defer f.Close()

	res, err := pagestore.Seed(ctx, s.store, s.contents, f)
	if err != nil {
		return res, fmt.Errorf("seed %s: %w", path, err)
	}
	return res, nil
}

// candidates returns the store resolution reads from, behind the
// configured cache.
func (s *site) candidates(ctx context.Context) (pages.Store, error) {
	var c cache.Cache[[]pages.Page]
	switch s.cfg.Cache {
	case cacheMemory:
		c = cache.NewMemory[[]pages.Page](
			cache.WithDefaultTTL(s.cfg.CacheTTL),
			cache.WithMaxEntries(4096),
		)
	case cacheRedis:
		client, err := s.redisClient(ctx)
		if err != nil {
			return nil, err
		}
		c = cache.NewRedis[[]pages.Page](client, cache.JSON[[]pages.Page]{},
			cache.WithPrefix("reek:pages:"),
			cache.WithRedisDefaultTTL(s.cfg.CacheTTL),
		)
	default:
		return s.store, nil
	}

	cached := pages.NewCachedStore(s.store, c, pages.WithCacheLogger(s.log))
	s.closers = append(s.closers, cached.Close, c.Close)
	return cached, nil
}

func (s *site) redisClient(ctx context.Context) (goredis.UniversalClient, error) {
	if s.redis != nil {
		return s.redis, nil
	}
	client, err := redis.Open(ctx, s.cfg.Redis)
	if err != nil {
		return nil, err
	}
	s.redis = client
	s.closers = append(s.closers, client.Close)
	return client, nil
}

// Close releases everything the site opened, most recent first.
func (s *site) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}
