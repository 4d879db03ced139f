package pages

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync/atomic"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/reek/pkg/urlconf"
)

// Route is a named application route mounted below a page.
type Route struct {
	Defaults map[string]string
	// Name is the route name, qualified as "namespace:name" when the
	// application has a namespace.
	Name string
	// Pattern is the route pattern prefixed with the page path, in page
	// path form: "news/{slug}/".
	Pattern   urlconf.Pattern
	PagePath  string
	ViewLabel string
}

// URL formats the route with params into an absolute URL path.
func (r Route) URL(params map[string]string) (string, error) {
	p, err := r.Pattern.Format(params)
	if err != nil {
		return "", err
	}
	return "/" + p, nil
}

type snapshot struct {
	routes     map[string][]Route
	version    uint64
	regVersion uint64
}

// ReverseIndex maps route names to the application routes mounted in the
// page tree. It is rebuilt lazily after page writes or view registry
// changes; readers always see a complete index.
type ReverseIndex struct {
	store    Store
	registry *Registry
	opts     *options
	current  atomic.Pointer[snapshot]
	cancel   func()
	group    singleflight.Group
	version  atomic.Uint64
}

// maxPopulateAttempts bounds how often EnsurePopulated retries when writes
// keep invalidating the index while it is being built.
const maxPopulateAttempts = 3

// NewReverseIndex creates an empty index over store and registry. It
// subscribes to store events; call Close to release it.
func NewReverseIndex(store Store, registry *Registry, opts ...Option) *ReverseIndex {
	x := &ReverseIndex{
		store:    store,
		registry: registry,
		opts:     applyOptions(opts),
	}
	x.version.Store(1)
	x.cancel = store.Subscribe(func(Event) { x.Invalidate() })
	return x
}

// Invalidate marks the index stale. The next EnsurePopulated rebuilds it.
func (x *ReverseIndex) Invalidate() {
	x.version.Add(1)
}

// Version returns the current invalidation counter.
func (x *ReverseIndex) Version() uint64 {
	return x.version.Load()
}

// Close unsubscribes from the store.
func (x *ReverseIndex) Close() error {
	x.cancel()
	return nil
}

func (x *ReverseIndex) fresh(s *snapshot) bool {
	return s != nil && s.version == x.version.Load() && s.regVersion == x.registry.Version()
}

// EnsurePopulated rebuilds the index if it is stale. Concurrent callers
// share one rebuild. Calling it on a fresh index is a no-op.
func (x *ReverseIndex) EnsurePopulated(ctx context.Context) error {
	for range maxPopulateAttempts {
		if x.fresh(x.current.Load()) {
			return nil
		}
		_, err, _ := x.group.Do("populate", func() (any, error) {
			if x.fresh(x.current.Load()) {
				return nil, nil
			}
			s, err := x.build(ctx)
			if err != nil {
				return nil, err
			}
			x.current.Store(s)
			return nil, nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (x *ReverseIndex) build(ctx context.Context) (*snapshot, error) {
	ctx, span := x.opts.tracer.Start(ctx, "pages.reverse_index.build")
	defer span.End()

	s := &snapshot{
		routes:     make(map[string][]Route),
		version:    x.version.Load(),
		regVersion: x.registry.Version(),
	}

	all, err := x.store.All(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, errors.Join(ErrStore, err)
	}
	SortTree(all)

	for _, page := range all {
		view, err := x.registry.Get(page.ViewName)
		if err != nil {
			continue
		}
		app, ok := view.(Application)
		if !ok {
			continue
		}
		// Tables the resolver rejects are skipped here too.
		sub, err := urlconf.NewResolver(page.Path, app.URLs())
		if err != nil {
			x.opts.logger.WarnContext(ctx, "skipping invalid application routes",
				slog.String("view", app.Label()),
				slog.String("page", page.Path),
				slog.Any("error", err),
			)
			continue
		}

		for _, rt := range sub.Routes() {
			if rt.Name == "" {
				continue
			}
			pattern, err := urlconf.ParsePattern(urlconf.Join(page.Path, rt.Pattern))
			if err != nil {
				x.opts.logger.WarnContext(ctx, "skipping unparsable route",
					slog.String("page", page.Path),
					slog.String("route", rt.Name),
					slog.Any("error", err),
				)
				continue
			}
			name := rt.Name
			if ns := app.Namespace(); ns != "" {
				name = ns + ":" + name
			}
			s.routes[name] = append(s.routes[name], Route{
				Name:      name,
				Pattern:   pattern,
				Defaults:  rt.Defaults,
				PagePath:  page.Path,
				ViewLabel: app.Label(),
			})
		}
	}

	span.SetAttributes(
		attribute.Int("reek.pages", len(all)),
		attribute.Int("reek.routes", len(s.routes)),
	)
	x.opts.logger.DebugContext(ctx, "reverse index rebuilt",
		slog.Uint64("version", s.version),
		slog.Int("routes", len(s.routes)),
	)
	x.opts.metrics.observeRebuild(len(s.routes))

	return s, nil
}

// Lookup returns the first route registered under name, in page path
// order.
func (x *ReverseIndex) Lookup(ctx context.Context, name string) (Route, error) {
	routes, err := x.LookupAll(ctx, name)
	if err != nil {
		return Route{}, err
	}
	return routes[0], nil
}

// LookupAll returns every route registered under name, in page path order.
func (x *ReverseIndex) LookupAll(ctx context.Context, name string) ([]Route, error) {
	if err := x.EnsurePopulated(ctx); err != nil {
		return nil, err
	}
	routes := x.current.Load().routes[name]
	if len(routes) == 0 {
		return nil, fmt.Errorf("%w: route %q", ErrNotRegistered, name)
	}
	return slices.Clone(routes), nil
}

// Names returns every route name in the index, sorted.
func (x *ReverseIndex) Names(ctx context.Context) ([]string, error) {
	if err := x.EnsurePopulated(ctx); err != nil {
		return nil, err
	}
	return slices.Sorted(maps.Keys(x.current.Load().routes)), nil
}

// Reverse builds the URL of the named route. When the name is mounted
// more than once, the first route the params satisfy wins.
func (x *ReverseIndex) Reverse(ctx context.Context, name string, params map[string]string) (string, error) {
	routes, err := x.LookupAll(ctx, name)
	if err != nil {
		return "", err
	}

	var errs []error
	for _, rt := range routes {
		url, err := rt.URL(params)
		if err == nil {
			return url, nil
		}
		errs = append(errs, err)
	}
	return "", fmt.Errorf("pages: reverse %q: %w", name, errors.Join(errs...))
}
