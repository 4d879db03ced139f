package internal

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/reek/pkg/logger"
)

const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 2 * time.Minute
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20
	defaultShutdownTimeout   = 30 * time.Second
)

// DefaultMetricsPath is where WithMetrics mounts the Prometheus handler.
const DefaultMetricsPath = "/metrics"

// App is the HTTP host: declared routes, probes, metrics and static files
// first, the page dispatcher behind them. It is configured once in New.
type App struct {
	router chi.Router
	logger *slog.Logger

	middlewares  []Middleware
	handlers     []Handler
	staticRoutes []staticRoute
	pages        *pagesConfig
	healthConfig *healthConfig
	metrics      prometheus.Gatherer

	errorHandler            ErrorHandler
	notFoundHandler         HandlerFunc
	methodNotAllowedHandler HandlerFunc
}

type staticRoute struct {
	handler http.Handler
	pattern string
}

// New applies opts and builds the route table.
//
//	app := reek.New(
//	    reek.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    reek.WithHandlers(feed),
//	    reek.WithPages(resolver, reek.WithReverse(index)),
//	)
func New(opts ...Option) *App {
	a := &App{router: chi.NewRouter(), logger: logger.NewNope()}
	for _, opt := range opts {
		opt(a)
	}
	a.mount()
	return a
}

// Router exposes the chi router for mounting foreign handlers.
func (a *App) Router() chi.Router { return a.router }

func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) { a.router.ServeHTTP(w, r) }

// Run serves on addr until a signal or a failure; see RunOption.
func (a *App) Run(addr string, opts ...RunOption) error {
	return runServer(newRunConfig(addr, a.router, opts))
}

func (a *App) mount() {
	r := a.router
	if a.notFoundHandler != nil {
		r.NotFound(a.serve(a.notFoundHandler))
	}
	if a.methodNotAllowedHandler != nil {
		r.MethodNotAllowed(a.serve(a.methodNotAllowedHandler))
	}
	for _, mw := range a.middlewares {
		r.Use(a.adaptMiddleware(mw))
	}

	for _, sr := range a.staticRoutes {
		r.Mount(sr.pattern, sr.handler)
	}
	if a.healthConfig != nil {
		a.mountHealth(r)
	}
	if a.metrics != nil {
		r.Handle(DefaultMetricsPath, promhttp.HandlerFor(a.metrics, promhttp.HandlerOpts{}))
	}

	adapter := &routerAdapter{router: r, app: a}
	for _, h := range a.handlers {
		h.Routes(adapter)
	}

	// Registered last: chi prefers any explicit route over the wildcard.
	if a.pages != nil {
		r.Handle("/*", a.pageHandler())
	}
}

// handleError answers a failed request. A custom error handler gets every
// error; otherwise 404s go to the not-found handler and the rest become a
// bare status page. Nothing is written once the response has started.
func (a *App) handleError(c Context, err error) {
	if c.Written() {
		c.LogWarn("error after response was written", "error", err)
		return
	}

	if a.errorHandler != nil {
		if herr := a.errorHandler(c, err); herr != nil {
			c.LogError("error handler failed", "error", herr)
		}
		return
	}

	code := StatusCode(err)
	if code == http.StatusNotFound && a.notFoundHandler != nil {
		if herr := a.notFoundHandler(c); herr != nil {
			c.LogError("not found handler failed", "error", herr)
		}
		return
	}
	if code >= http.StatusInternalServerError {
		c.LogError("request failed", "error", err)
	}
	http.Error(c.Response(), http.StatusText(code), code)
}

// background is a task started with the server and cancelled on shutdown.
type background = func(context.Context) error
