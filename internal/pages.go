package internal

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/reek/pkg/logger"
	"github.com/dmitrymomot/reek/pkg/pages"
)

// PageResolver resolves request paths to pages. *pages.Resolver implements it.
type PageResolver interface {
	Resolve(ctx context.Context, path string) (*pages.Match, error)
}

// URLReverser builds URLs from route names. *pages.ReverseIndex implements it.
type URLReverser interface {
	Reverse(ctx context.Context, name string, params map[string]string) (string, error)
}

type pagesConfig struct {
	resolver    PageResolver
	reverser    URLReverser
	appendSlash bool
}

// PagesOption configures the page dispatcher.
type PagesOption func(*pagesConfig)

// WithReverse makes Context.Reverse available to handlers and views.
func WithReverse(r URLReverser) PagesOption {
	return func(c *pagesConfig) {
		c.reverser = r
	}
}

// WithAppendSlash redirects paths without a trailing slash to the slashed
// form when that form resolves. Disabled by default: such paths are 404.
func WithAppendSlash() PagesOption {
	return func(c *pagesConfig) {
		c.appendSlash = true
	}
}

// pageHandler is the catch-all mounted after every declared route.
func (a *App) pageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(w, r, a)
		if err := a.servePage(c); err != nil {
			a.handleError(c, err)
		}
	}
}

func (a *App) servePage(c *requestContext) error {
	path := c.r.URL.Path
	m, err := a.pages.resolver.Resolve(c.Context(), path)
	if err != nil {
		if target, ok := a.slashRedirect(c, path, err); ok {
			return c.Redirect(http.StatusMovedPermanently, target)
		}
		return err
	}

	c.r = c.r.WithContext(pages.WithMatch(c.r.Context(), m))
	c.LogDebug("page resolved",
		slog.String("page", m.Page.Path),
		slog.String("view", m.View.Label()),
		slog.String("route", m.Route),
	)
	return m.Handler.ServePage(c.w, c.r, m)
}

func (a *App) slashRedirect(c *requestContext, path string, err error) (string, bool) {
	if !a.pages.appendSlash || strings.HasSuffix(path, "/") {
		return "", false
	}
	// A Location of "//host/" or "/\\host/" leaves the site.
	if strings.HasPrefix(path, "//") || strings.HasPrefix(path, "/\\") {
		return "", false
	}
	var rerr *pages.ResolveError
	if !errors.As(err, &rerr) || rerr.Reason != pages.ReasonTrailingSlash {
		return "", false
	}
	if _, err := a.pages.resolver.Resolve(c.Context(), path+"/"); err != nil {
		return "", false
	}
	target := path + "/"
	if q := c.r.URL.RawQuery; q != "" {
		target += "?" + q
	}
	return target, true
}

// PageExtractor adds the resolved page path and view to log records
// written with a dispatched request context.
func PageExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		m, ok := pages.MatchFrom(ctx)
		if !ok {
			return slog.Attr{}, false
		}
		return slog.Group("page",
			slog.String("path", m.Page.Path),
			slog.String("view", m.View.Label()),
		), true
	}
}
