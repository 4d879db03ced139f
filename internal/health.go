package internal

import (
	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/reek/pkg/health"
)

type healthConfig struct {
	live, ready string
	checks      health.Checks
}

// HealthOption configures the probe endpoints enabled by WithHealthChecks.
type HealthOption func(*healthConfig)

// WithLivenessPath moves the liveness probe off /health/live.
func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.live = path
		}
	}
}

// WithReadinessPath moves the readiness probe off /health/ready.
func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.ready = path
		}
	}
}

// WithReadinessCheck adds a check run on every readiness probe. Checks
// run concurrently under one shared timeout.
//
//	reek.WithReadinessCheck("db", db.Healthcheck(conn))
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return func(c *healthConfig) {
		if c.checks == nil {
			c.checks = health.Checks{}
		}
		c.checks[name] = fn
	}
}

// WithHealthChecks mounts a liveness probe that always answers 200 and a
// readiness probe that answers 503 while any check fails.
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{live: "/health/live", ready: "/health/ready"}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}

func (a *App) mountHealth(r chi.Router) {
	r.Get(a.healthConfig.live, health.LivenessHandler())
	r.Get(a.healthConfig.ready, health.ReadinessHandler(a.healthConfig.checks, health.WithLogger(a.logger)))
}
