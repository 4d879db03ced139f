// Package logger builds the application's slog loggers.
//
// Handlers are JSON or text on a writer, optionally fanned out to Sentry,
// and wrapped in a decorator that adds request-scoped attributes pulled
// from the context by ContextExtractor functions.
//
//	var cfg logger.Config
//	_ = env.Parse(&cfg)
//
//	log := logger.New(cfg, os.Stdout, logger.ContextValue[string](requestIDKey{}, "request_id"))
//	defer logger.Flush(2 * time.Second)
//
//	log.InfoContext(ctx, "page served", slog.String("path", "/news/"))
//	// {"level":"INFO","msg":"page served","path":"/news/","request_id":"..."}
//
// When SENTRY_DSN is empty the logger writes to the writer only. Errors
// become Sentry issues; warnings are kept as Sentry logs unless MinLevel is
// error.
//
// NewNope returns a logger that discards everything; library packages use
// it as their default.
package logger
