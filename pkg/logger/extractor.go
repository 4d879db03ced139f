package logger

import (
	"context"
	"log/slog"
)

// ContextValue returns an extractor that logs the context value stored
// under key as attribute name. Zero values are skipped.
func ContextValue[T comparable](key any, name string) ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		v, ok := ctx.Value(key).(T)
		var zero T
		if !ok || v == zero {
			return slog.Attr{}, false
		}
		return slog.Any(name, v), true
	}
}
