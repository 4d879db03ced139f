package reek

import (
	"context"
	"io/fs"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/reek/internal"
	"github.com/dmitrymomot/reek/pkg/health"
	"github.com/dmitrymomot/reek/pkg/logger"
)

// Type aliases - public API
type (
	// App orchestrates the application lifecycle.
	App = internal.App

	// Router is the interface handlers use to declare routes.
	Router = internal.Router

	// Context provides request/response access and helper methods.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// ErrorHandler handles errors returned from handlers and page views.
	ErrorHandler = internal.ErrorHandler

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// PagesOption configures the page dispatcher.
	PagesOption = internal.PagesOption

	// PageResolver resolves request paths to pages.
	PageResolver = internal.PageResolver

	// URLReverser builds URLs from route names.
	URLReverser = internal.URLReverser

	// Component is the interface for renderable templates.
	Component = internal.Component

	// ContextExtractor extracts a slog attribute from context.
	ContextExtractor = logger.ContextExtractor

	// ResponseWriter wraps http.ResponseWriter with status and size tracking.
	ResponseWriter = internal.ResponseWriter

	// HTTPError is an error carrying an HTTP status.
	HTTPError = internal.HTTPError

	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption

	// Scalar constrains the typed parameter helpers.
	Scalar = internal.Scalar
)

// DefaultMetricsPath is where WithMetrics mounts the Prometheus handler.
const DefaultMetricsPath = internal.DefaultMetricsPath

// ErrPagesNotConfigured is returned by Context.Reverse when the app has no
// reverse index.
var ErrPagesNotConfigured = internal.ErrPagesNotConfigured

// New creates a new application with the given options.
//
// Example:
//
//	app := reek.New(
//	    reek.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    reek.WithPages(resolver, reek.WithReverse(index)),
//	)
//
//	err := app.Run(":8080", reek.Logger(log))
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// App options

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithHandlers registers handlers that declare routes.
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

// WithPages mounts the page dispatcher behind every declared route.
func WithPages(resolver PageResolver, opts ...PagesOption) Option {
	return internal.WithPages(resolver, opts...)
}

// WithReverse makes Context.Reverse available.
func WithReverse(r URLReverser) PagesOption {
	return internal.WithReverse(r)
}

// WithAppendSlash redirects slash-less paths to their resolvable slashed form.
func WithAppendSlash() PagesOption {
	return internal.WithAppendSlash()
}

// WithMetrics exposes the gatherer on /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return internal.WithMetrics(g)
}

// WithStaticFiles mounts a static file handler at the given pattern.
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return internal.WithStaticFiles(pattern, fsys, subDir)
}

// WithErrorHandler sets a custom error handler.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return internal.WithMethodNotAllowedHandler(h)
}

// WithLogger sets the application logger.
func WithLogger(l *slog.Logger) Option {
	return internal.WithLogger(l)
}

// Health options

// WithHealthChecks enables /health/live and /health/ready.
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// WithLivenessPath sets a custom liveness endpoint path.
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath sets a custom readiness endpoint path.
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Run options

// Logger sets the runtime logger.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout sets the timeout for graceful shutdown.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// ShutdownHook registers a cleanup function to run during shutdown.
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// Background starts fn with the server and cancels it on shutdown.
func Background(fn func(context.Context) error) RunOption {
	return internal.Background(fn)
}

// WithContext sets a custom base context for signal handling.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// Errors

// StatusCode maps a handler error to an HTTP status.
func StatusCode(err error) int {
	return internal.StatusCode(err)
}

// ToHTTPError converts any handler error to an HTTPError.
func ToHTTPError(err error) *HTTPError {
	return internal.ToHTTPError(err)
}

// NewHTTPError creates an HTTPError.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

// PageExtractor adds the resolved page to log records.
func PageExtractor() ContextExtractor {
	return internal.PageExtractor()
}

// Generic helpers

// ContextValue returns the typed value stored under key.
func ContextValue[T any](c Context, key any) T {
	return internal.ContextValue[T](c, key)
}

// Param returns a typed URL or page route parameter.
func Param[T Scalar](c Context, name string) T {
	return internal.Param[T](c, name)
}

// Query returns a typed query parameter.
func Query[T Scalar](c Context, name string) T {
	return internal.Query[T](c, name)
}

// QueryDefault returns a typed query parameter or defaultValue.
func QueryDefault[T Scalar](c Context, name string, defaultValue T) T {
	return internal.QueryDefault(c, name, defaultValue)
}
