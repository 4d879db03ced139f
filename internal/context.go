package internal

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/reek/pkg/pages"
)

// Component is anything that renders itself to a writer, such as a templ
// template.
type Component = templ.Component

// Context is handed to every HandlerFunc. It is also a context.Context
// backed by the current request's context.
type Context interface {
	context.Context

	Request() *http.Request
	Response() http.ResponseWriter
	Context() context.Context

	// Param looks up a chi URL parameter first, then a parameter or default
	// of the application route matched by the page dispatcher.
	Param(name string) string
	Query(name string) string
	QueryDefault(name, defaultValue string) string
	Form(name string) string
	Header(name string) string
	SetHeader(name, value string)

	JSON(code int, v any) error
	String(code int, s string) error
	NoContent(code int) error
	Redirect(code int, url string) error
	Render(code int, component Component) error

	// Error builds an HTTPError without writing anything. Return it from
	// the handler to reach the error handler.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	// Page reports the page match of a dispatched request.
	Page() (*pages.Match, bool)

	// Reverse builds the URL of a named page or application route. It
	// fails with ErrPagesNotConfigured when the app has no reverse index.
	Reverse(name string, params map[string]string) (string, error)

	// Written reports whether the status line has been sent.
	Written() bool
	ResponseWriter() *ResponseWriter

	Logger() *slog.Logger
	LogDebug(msg string, attrs ...any)
	LogInfo(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)

	// Set stores value in the request context, visible to the rest of the
	// chain through Get or Value.
	Set(key, value any)
	Get(key any) any

	// SetRequest swaps the request seen downstream. Nil is ignored.
	SetRequest(r *http.Request)
}

type requestContext struct {
	r        *http.Request
	w        *ResponseWriter
	log      *slog.Logger
	reverser URLReverser
}

// newContext wraps w unless an outer layer already did, so every layer of
// one request shares the same status tracking.
func newContext(w http.ResponseWriter, r *http.Request, app *App) *requestContext {
	rw, ok := w.(*ResponseWriter)
	if !ok {
		rw = NewResponseWriter(w)
	}
	c := &requestContext{r: r, w: rw, log: app.logger}
	if app.pages != nil {
		c.reverser = app.pages.reverser
	}
	return c
}

func (c *requestContext) Request() *http.Request          { return c.r }
func (c *requestContext) Response() http.ResponseWriter   { return c.w }
func (c *requestContext) ResponseWriter() *ResponseWriter { return c.w }
func (c *requestContext) Context() context.Context        { return c.r.Context() }
func (c *requestContext) Written() bool                   { return c.w.Written() }
func (c *requestContext) Logger() *slog.Logger            { return c.log }

func (c *requestContext) Deadline() (time.Time, bool) { return c.r.Context().Deadline() }
func (c *requestContext) Done() <-chan struct{}       { return c.r.Context().Done() }
func (c *requestContext) Err() error                  { return c.r.Context().Err() }
func (c *requestContext) Value(key any) any           { return c.r.Context().Value(key) }
func (c *requestContext) Get(key any) any             { return c.r.Context().Value(key) }

func (c *requestContext) Set(key, value any) {
	c.r = c.r.WithContext(context.WithValue(c.r.Context(), key, value))
}

func (c *requestContext) SetRequest(r *http.Request) {
	if r != nil {
		c.r = r
	}
}

func (c *requestContext) Param(name string) string {
	if v := chi.URLParam(c.r, name); v != "" {
		return v
	}
	if m, ok := pages.MatchFrom(c.r.Context()); ok {
		return m.Param(name)
	}
	return ""
}

func (c *requestContext) Query(name string) string { return c.r.URL.Query().Get(name) }

func (c *requestContext) QueryDefault(name, defaultValue string) string {
	if v := c.Query(name); v != "" {
		return v
	}
	return defaultValue
}

func (c *requestContext) Form(name string) string   { return c.r.FormValue(name) }
func (c *requestContext) Header(name string) string { return c.r.Header.Get(name) }

func (c *requestContext) SetHeader(name, value string) { c.w.Header().Set(name, value) }

// start sets the content type, when given, and sends the status line.
func (c *requestContext) start(code int, contentType string) {
	if contentType != "" {
		c.w.Header().Set("Content-Type", contentType)
	}
	c.w.WriteHeader(code)
}

func (c *requestContext) JSON(code int, v any) error {
	c.start(code, "application/json; charset=utf-8")
	return json.NewEncoder(c.w).Encode(v)
}

func (c *requestContext) String(code int, s string) error {
	c.start(code, "text/plain; charset=utf-8")
	_, err := c.w.Write([]byte(s))
	return err
}

func (c *requestContext) Render(code int, component Component) error {
	c.start(code, "text/html; charset=utf-8")
	return component.Render(c.r.Context(), c.w)
}

func (c *requestContext) NoContent(code int) error {
	c.start(code, "")
	return nil
}

func (c *requestContext) Redirect(code int, url string) error {
	http.Redirect(c.w, c.r, url, code)
	return nil
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(code, message, opts...)
}

func (c *requestContext) Page() (*pages.Match, bool) { return pages.MatchFrom(c.r.Context()) }

func (c *requestContext) Reverse(name string, params map[string]string) (string, error) {
	if c.reverser == nil {
		return "", ErrPagesNotConfigured
	}
	return c.reverser.Reverse(c.r.Context(), name, params)
}

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.log.DebugContext(c.r.Context(), msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.log.InfoContext(c.r.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.log.WarnContext(c.r.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.log.ErrorContext(c.r.Context(), msg, attrs...)
}
