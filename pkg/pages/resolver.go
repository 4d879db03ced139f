package pages

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/reek/pkg/cache"
	"github.com/dmitrymomot/reek/pkg/urlconf"
)

// Resolver maps request paths to pages and their views.
// It is safe for concurrent use.
type Resolver struct {
	store    Store
	registry *Registry
	subs     *cache.Memory[*urlconf.Resolver[Handler]]
	opts     *options
	cancel   func()
	regVer   atomic.Uint64
}

// NewResolver creates a resolver over store and registry. The resolver
// subscribes to store events; call Close to release it.
func NewResolver(store Store, registry *Registry, opts ...Option) *Resolver {
	o := applyOptions(opts)
	r := &Resolver{
		store:    store,
		registry: registry,
		opts:     o,
		subs: cache.NewMemory[*urlconf.Resolver[Handler]](
			cache.WithMaxEntries(o.cacheSize),
			cache.WithCleanupInterval(0),
		),
	}
	r.regVer.Store(registry.Version())
	r.cancel = store.Subscribe(func(e Event) {
		r.opts.logger.Debug("page write, dropping application routes",
			slog.String("event", e.Kind.String()),
			slog.String("path", e.Page.Path),
		)
		r.Invalidate()
	})
	return r
}

// Invalidate drops every cached application route table.
func (r *Resolver) Invalidate() {
	_ = r.subs.Clear(context.Background())
}

// Close unsubscribes from the store and releases the route table cache.
func (r *Resolver) Close() error {
	r.cancel()
	return r.subs.Close()
}

// Resolve finds the page serving path.
//
// The path must end with a slash; a leading slash is optional. Every
// not-found outcome is a *ResolveError wrapping ErrNotFound. Store failures
// and broken application route tables are returned as other errors.
func (r *Resolver) Resolve(ctx context.Context, path string) (m *Match, err error) {
	started := time.Now()
	ctx, span := r.opts.tracer.Start(ctx, "pages.resolve",
		trace.WithAttributes(attribute.String("reek.request.path", path)),
	)
	defer func() {
		outcome := outcomeOf(m, err)
		span.SetAttributes(attribute.String("reek.resolve.outcome", outcome))
		if m != nil {
			span.SetAttributes(
				attribute.String("reek.page.path", m.Page.Path),
				attribute.String("reek.page.view", m.View.Label()),
			)
		}
		if outcome == OutcomeError {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		r.opts.metrics.observeResolution(outcome, started)
	}()

	return r.resolve(ctx, path)
}

func (r *Resolver) resolve(ctx context.Context, path string) (*Match, error) {
	if !strings.HasSuffix(path, "/") {
		return nil, &ResolveError{Path: path, Reason: ReasonTrailingSlash}
	}

	slugs := Split(path)
	candidates := CandidatePaths(slugs)

	found, err := r.store.Candidates(ctx, candidates)
	if err != nil {
		return nil, errors.Join(ErrStore, err)
	}
	if len(found) == 0 {
		slices.Reverse(candidates)
		return nil, &ResolveError{Path: path, Reason: ReasonNoPage, Tried: candidates}
	}

	page := found[0]
	used := Split(page.Path)
	if len(used) > len(slugs) || !slices.Equal(used, slugs[:len(used)]) {
		return nil, fmt.Errorf("%w: candidate %q does not prefix %q", ErrStore, page.Path, path)
	}

	view, err := r.registry.Get(page.ViewName)
	if err != nil {
		r.opts.logger.WarnContext(ctx, "page has an unregistered view",
			slog.String("page", page.Path),
			slog.String("view", page.ViewName),
		)
		return nil, &ResolveError{Path: path, Reason: ReasonUnregistered, Tried: []string{page.Path}}
	}

	remaining := slugs[len(used):]
	if len(remaining) > 0 && !view.AllowsSubpages() {
		return nil, &ResolveError{Path: path, Reason: ReasonSubpages, Tried: []string{page.Path}}
	}

	var slug string
	if len(used) > 0 {
		slug = used[len(used)-1]
	}

	m := &Match{
		Handler:      view,
		View:         view,
		Page:         page,
		Slug:         slug,
		SubpageSlugs: remaining,
	}

	app, ok := view.(Application)
	if !ok {
		return m, nil
	}

	sub, err := r.subresolver(ctx, app, page)
	if err != nil {
		return nil, err
	}

	sm, err := sub.Resolve(strings.Join(slugs, "/") + "/")
	if err != nil {
		var nm *urlconf.NoMatchError
		if errors.As(err, &nm) {
			return nil, &ResolveError{Path: path, Reason: ReasonNoRoute, Tried: nm.Tried}
		}
		return nil, err
	}

	m.Handler = sm.Route.Handler
	m.Route = sm.Route.Name
	m.Params = sm.Params
	m.Defaults = sm.Route.Defaults
	m.Namespace = app.Namespace()
	m.AppName = app.AppName()
	return m, nil
}

// subresolver returns the cached route table resolver of app mounted at page.
func (r *Resolver) subresolver(ctx context.Context, app Application, page Page) (*urlconf.Resolver[Handler], error) {
	if v := r.registry.Version(); r.regVer.Swap(v) != v {
		r.Invalidate()
	}

	key := app.Label() + "\x00" + page.Path
	return cache.GetOrSet(ctx, r.subs, key, func(context.Context) (*urlconf.Resolver[Handler], time.Duration, error) {
		sub, err := urlconf.NewResolver(page.Path, app.URLs())
		if err != nil {
			r.opts.logger.ErrorContext(ctx, "invalid application routes",
				slog.String("view", app.Label()),
				slog.String("page", page.Path),
				slog.Any("error", err),
			)
			return nil, 0, fmt.Errorf("pages: routes of view %q: %w", app.Label(), err)
		}
		return sub, -1, nil
	})
}

func outcomeOf(m *Match, err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return OutcomeNotFound
	case err != nil:
		return OutcomeError
	case m.Route != "" || m.IsApplication():
		return OutcomeApplication
	default:
		return OutcomePage
	}
}
