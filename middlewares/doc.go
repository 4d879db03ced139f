// Package middlewares provides HTTP middleware for reek applications.
//
// Global middleware wraps declared routes and page dispatch alike.
//
// # Request ID
//
// RequestID assigns an ID to each request. An upstream X-Request-ID or
// X-Correlation-ID header is kept, otherwise a UUID is generated. Combine
// it with RequestIDExtractor so every record logged with the request
// context carries request_id:
//
//	log := logger.New(cfg, os.Stdout, middlewares.RequestIDExtractor(), reek.PageExtractor())
//	app := reek.New(
//	    reek.WithLogger(log),
//	    reek.WithMiddleware(middlewares.RequestID()),
//	)
//
// # Recover
//
// Recover converts panics into a *PanicError handed to the error handler.
// It reports status 500 through StatusCode.
//
// # Timeout
//
// Timeout puts a deadline on the request context. Store queries issued by
// the page resolver observe it. When the handler overruns, a *TimeoutError
// (503, unwraps to context.DeadlineExceeded) goes to the error handler.
//
// # Access Log
//
// AccessLog writes one "request" record per request with method, path,
// status, size and duration.
//
// # Recommended Order
//
//	reek.WithMiddleware(
//	    middlewares.RequestID(),            // first: every later record gets the id
//	    middlewares.AccessLog("/health/live"),
//	    middlewares.Recover(),
//	    middlewares.Timeout(5*time.Second),
//	)
package middlewares
