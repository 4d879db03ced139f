package middlewares

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmitrymomot/reek/internal"
	"github.com/dmitrymomot/reek/pkg/logger"
)

type requestIDKey struct{}

// DefaultRequestIDHeaders lists the headers an upstream request ID is
// taken from, in order of preference.
var DefaultRequestIDHeaders = []string{"X-Request-ID", "X-Correlation-ID"}

type requestIDConfig struct {
	headers  []string
	generate func() string
	echo     string
}

// RequestIDOption configures RequestID.
type RequestIDOption func(*requestIDConfig)

// WithRequestIDHeaders replaces DefaultRequestIDHeaders.
func WithRequestIDHeaders(headers ...string) RequestIDOption {
	return func(cfg *requestIDConfig) { cfg.headers = headers }
}

// WithRequestIDGenerator replaces uuid.NewString for fresh IDs.
func WithRequestIDGenerator(gen func() string) RequestIDOption {
	return func(cfg *requestIDConfig) {
		if gen != nil {
			cfg.generate = gen
		}
	}
}

// WithRequestIDResponseHeader names the response header the ID is echoed
// in. An empty name disables the echo.
func WithRequestIDResponseHeader(header string) RequestIDOption {
	return func(cfg *requestIDConfig) { cfg.echo = header }
}

// RequestID tags each request with an ID, reusing one sent by a proxy when
// present. Read it back with RequestIDFrom.
func RequestID(opts ...RequestIDOption) internal.Middleware {
	cfg := &requestIDConfig{
		headers:  DefaultRequestIDHeaders,
		generate: uuid.NewString,
		echo:     "X-Request-ID",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	var upstream internal.Extractor
	for _, h := range cfg.headers {
		upstream = append(upstream, internal.FromHeader(h))
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			id, ok := upstream.Extract(c)
			if !ok {
				id = cfg.generate()
			}
			c.Set(requestIDKey{}, id)
			if cfg.echo != "" {
				c.SetHeader(cfg.echo, id)
			}
			return next(c)
		}
	}
}

// RequestIDFrom returns the request ID carried by ctx, or "". A
// reek.Context is itself a context.Context, so handlers pass c directly.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RequestIDExtractor adds request_id to records logged with a request
// context.
func RequestIDExtractor() logger.ContextExtractor {
	return logger.ContextValue[string](requestIDKey{}, "request_id")
}
