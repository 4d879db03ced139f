package middlewares

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/reek/internal"
)

// AccessLog returns middleware that logs one record per request after the
// handler returns. The status comes from the wrapped response writer, so
// page dispatch and error handler responses are included. Requests whose
// path is in skip are not logged.
func AccessLog(skip ...string) internal.Middleware {
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			if _, ok := skipped[c.Request().URL.Path]; ok {
				return next(c)
			}

			start := time.Now()
			err := next(c)

			attrs := []any{
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Duration("duration", time.Since(start)),
			}
			switch rw := c.ResponseWriter(); {
			case err != nil:
				attrs = append(attrs, slog.Int("status", internal.StatusCode(err)), slog.Any("error", err))
			case rw != nil && rw.Written():
				attrs = append(attrs, slog.Int("status", rw.Status()), slog.Int64("size", rw.Size()))
			}
			c.LogInfo("request", attrs...)

			return err
		}
	}
}
