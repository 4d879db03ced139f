package pages

import (
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/reek/pkg/logger"
)

const tracerName = "github.com/dmitrymomot/reek/pkg/pages"

// Option configures a Resolver or a ReverseIndex.
type Option func(*options)

type options struct {
	logger    *slog.Logger
	metrics   *Metrics
	tracer    trace.Tracer
	cacheSize int
}

func defaultOptions() *options {
	return &options{
		logger:    logger.NewNope(),
		tracer:    otel.Tracer(tracerName),
		cacheSize: 256,
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics records resolutions and index rebuilds in m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithTracer sets the tracer. Defaults to the global provider's tracer.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) {
		if t != nil {
			o.tracer = t
		}
	}
}

// WithSubresolverCacheSize bounds the number of application route tables
// kept by a Resolver. Defaults to 256.
func WithSubresolverCacheSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.cacheSize = n
		}
	}
}
