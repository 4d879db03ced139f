package pages

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Resolution outcomes recorded by Metrics.
const (
	OutcomePage        = "page"
	OutcomeApplication = "application"
	OutcomeNotFound    = "not_found"
	OutcomeError       = "error"
)

// MetricsOption configures Metrics.
type MetricsOption func(*metricsConfig)

type metricsConfig struct {
	registry  prometheus.Registerer
	labels    prometheus.Labels
	namespace string
	buckets   []float64
}

// WithMetricsNamespace sets the metric namespace. Defaults to "reek".
func WithMetricsNamespace(ns string) MetricsOption {
	return func(c *metricsConfig) {
		c.namespace = ns
	}
}

// WithMetricsRegistry sets the registerer. Defaults to
// prometheus.DefaultRegisterer.
func WithMetricsRegistry(r prometheus.Registerer) MetricsOption {
	return func(c *metricsConfig) {
		c.registry = r
	}
}

// WithMetricsConstLabels adds constant labels to every metric.
func WithMetricsConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *metricsConfig) {
		c.labels = labels
	}
}

// WithMetricsBuckets sets the resolution duration histogram buckets.
func WithMetricsBuckets(buckets []float64) MetricsOption {
	return func(c *metricsConfig) {
		c.buckets = buckets
	}
}

// Metrics holds the Prometheus collectors for page resolution.
// A nil *Metrics records nothing.
type Metrics struct {
	resolutions *prometheus.CounterVec
	duration    prometheus.Histogram
	rebuilds    prometheus.Counter
	routes      prometheus.Gauge
}

// NewMetrics creates and registers the page resolution collectors.
func NewMetrics(opts ...MetricsOption) *Metrics {
	cfg := &metricsConfig{
		registry:  prometheus.DefaultRegisterer,
		namespace: "reek",
		buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	factory := promauto.With(cfg.registry)

	return &Metrics{
		resolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.namespace,
			Subsystem:   "pages",
			Name:        "resolutions_total",
			Help:        "Page path resolutions by outcome.",
			ConstLabels: cfg.labels,
		}, []string{"outcome"}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   cfg.namespace,
			Subsystem:   "pages",
			Name:        "resolution_duration_seconds",
			Help:        "Time spent resolving page paths.",
			ConstLabels: cfg.labels,
			Buckets:     cfg.buckets,
		}),
		rebuilds: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.namespace,
			Subsystem:   "pages",
			Name:        "reverse_index_rebuilds_total",
			Help:        "Reverse route index rebuilds.",
			ConstLabels: cfg.labels,
		}),
		routes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   cfg.namespace,
			Subsystem:   "pages",
			Name:        "reverse_index_routes",
			Help:        "Named routes in the current reverse index.",
			ConstLabels: cfg.labels,
		}),
	}
}

func (m *Metrics) observeResolution(outcome string, started time.Time) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(outcome).Inc()
	m.duration.Observe(time.Since(started).Seconds())
}

func (m *Metrics) observeRebuild(routes int) {
	if m == nil {
		return
	}
	m.rebuilds.Inc()
	m.routes.Set(float64(routes))
}
