// Package internal provides the HTTP host for reek applications.
//
// This package is internal and should not be used directly. Import
// "github.com/dmitrymomot/reek" instead, which re-exports the public API.
//
// # Core Types
//
//   - App: HTTP routing, middleware, page dispatch, health and metrics endpoints, graceful shutdown
//   - Context: request/response access and helpers, including the resolved page
//   - Router: interface handlers use to declare routes
//   - Handler: types that declare routes on a router
//   - HandlerFunc, Middleware, ErrorHandler: the handler chain
//
// # Page Dispatch
//
// WithPages mounts a catch-all route behind every declared route. The
// request path is handed to the page resolver; the match is stored in the
// request context (pages.MatchFrom) and served by the matched handler:
//
//	app := internal.New(
//	    internal.WithHandlers(api),
//	    internal.WithPages(resolver, internal.WithReverse(index)),
//	)
//
// Declared routes, static files, health and metrics endpoints always win
// over pages. Paths that resolve to nothing produce pages.ErrNotFound, which
// the default error handling turns into a 404 (or the WithNotFoundHandler
// response). views.ErrForbidden becomes a 403 and HTTPError keeps its code.
// StatusCode and ToHTTPError expose the same mapping to custom error
// handlers.
//
// Inside handlers and error handlers, Context.Page returns the match and
// Context.Param falls back to the matched application route parameters:
//
//	func notFound(c internal.Context, err error) error {
//	    if m, ok := c.Page(); ok {
//	        c.LogWarn("view failed", "page", m.Page.Path, "error", err)
//	    }
//	    return c.String(internal.StatusCode(err), "oops")
//	}
//
// # Running
//
// Run listens, starts Background tasks such as the page store listener and
// blocks until SIGINT/SIGTERM. Shutdown stops the server, cancels background
// tasks and runs shutdown hooks in order:
//
//	err := app.Run(":8080",
//	    internal.Logger(log),
//	    internal.Background(store.Listen),
//	    internal.ShutdownHook(db.Shutdown(conn)),
//	)
package internal
