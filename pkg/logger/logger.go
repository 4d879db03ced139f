package logger

import (
	"io"
	"log/slog"
)

// New builds a logger writing to w. Invalid levels fall back to info and
// are reported through the logger itself.
func New(cfg Config, w io.Writer, extractors ...ContextExtractor) *slog.Logger {
	level, levelErr := ParseLevel(cfg.Level)
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	var sentryErr error
	if cfg.Sentry.DSN != "" {
		var sh slog.Handler
		sh, sentryErr = newSentryHandler(cfg.Sentry)
		if sentryErr == nil {
			handler = fanout{handler, sh}
		}
	}

	log := slog.New(NewLogHandlerDecorator(handler, extractors...))
	if levelErr != nil {
		log.Warn("invalid log level, using info", slog.String("error", levelErr.Error()))
	}
	if sentryErr != nil {
		// Degrade to the writer only.
		log.Error("failed to initialize Sentry", slog.String("error", sentryErr.Error()))
	}
	return log
}
