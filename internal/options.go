package internal

import (
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures an App in New.
type Option func(*App)

// WithMiddleware appends global middleware. The first one given runs
// outermost. Global middleware wraps page dispatch too.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) { a.middlewares = append(a.middlewares, mw...) }
}

// WithHandlers registers handlers whose Routes run while New builds the
// route table.
func WithHandlers(h ...Handler) Option {
	return func(a *App) { a.handlers = append(a.handlers, h...) }
}

// WithPages serves every path no declared route claims from the page tree.
// Unresolved paths reach the error handler as pages.ErrNotFound.
//
//	reek.WithPages(resolver, reek.WithReverse(index), reek.WithAppendSlash())
func WithPages(resolver PageResolver, opts ...PagesOption) Option {
	return func(a *App) {
		if resolver == nil {
			return
		}
		cfg := &pagesConfig{resolver: resolver}
		for _, opt := range opts {
			opt(cfg)
		}
		a.pages = cfg
	}
}

// WithMetrics serves g on DefaultMetricsPath. Pass the registry the page
// metrics were registered with.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(a *App) { a.metrics = g }
}

// WithStaticFiles serves the files under subDir of fsys at pattern, which
// should end in a slash. Directory paths answer 404. It panics when subDir
// is not a valid path.
//
//	//go:embed public
//	var assets embed.FS
//
//	reek.WithStaticFiles("/static/", assets, "public")
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return func(a *App) {
		sub, err := fs.Sub(fsys, subDir)
		if err != nil {
			panic(err)
		}
		files := http.StripPrefix(strings.TrimSuffix(pattern, "/"), http.FileServerFS(sub))
		a.staticRoutes = append(a.staticRoutes, staticRoute{
			pattern: pattern,
			handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if strings.HasSuffix(r.URL.Path, "/") {
					http.NotFound(w, r)
					return
				}
				h := w.Header()
				h.Set("Cache-Control", "public, max-age=3600")
				h.Set("X-Content-Type-Options", "nosniff")
				files.ServeHTTP(w, r)
			}),
		})
	}
}

// WithErrorHandler takes over every error returned by handlers and page
// views, including unresolved pages.
//
//	reek.WithErrorHandler(func(c reek.Context, err error) error {
//	    e := reek.ToHTTPError(err)
//	    return c.Render(e.Code, templates.Error(e))
//	})
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) { a.errorHandler = h }
}

// WithNotFoundHandler answers unknown routes and, when no error handler is
// set, unresolved pages.
func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) { a.notFoundHandler = h }
}

// WithMethodNotAllowedHandler answers requests whose path matched a route
// declared for other methods.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return func(a *App) { a.methodNotAllowedHandler = h }
}

// WithLogger sets the logger handed to Context and the health probes.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}
