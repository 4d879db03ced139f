package internal

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/reek/pkg/logger"
)

// RunOption configures the server runtime.
type RunOption func(*runConfig)

type runConfig struct {
	handler         http.Handler
	logger          *slog.Logger
	baseCtx         context.Context
	address         string
	shutdownHooks   []func(context.Context) error
	background      []background
	shutdownTimeout time.Duration
}

func newRunConfig(addr string, h http.Handler, opts []RunOption) *runConfig {
	cfg := &runConfig{
		handler:         h,
		address:         addr,
		baseCtx:         context.Background(),
		shutdownTimeout: defaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.address == "" {
		cfg.address = ":8080"
	}
	if cfg.logger == nil {
		cfg.logger = logger.NewNope()
	}
	return cfg
}

// Logger sets the runtime logger. Without it the server runs silently.
func Logger(l *slog.Logger) RunOption {
	return func(c *runConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// ShutdownTimeout bounds graceful shutdown: draining the server, waiting
// for background tasks and running hooks. Defaults to 30 seconds.
func ShutdownTimeout(d time.Duration) RunOption {
	return func(c *runConfig) {
		if d > 0 {
			c.shutdownTimeout = d
		}
	}
}

// ShutdownHook registers a cleanup function run after the server and the
// background tasks stopped, in registration order.
//
// Example:
//
//	reek.ShutdownHook(db.Shutdown(conn))
func ShutdownHook(fn func(context.Context) error) RunOption {
	return func(c *runConfig) {
		if fn != nil {
			c.shutdownHooks = append(c.shutdownHooks, fn)
		}
	}
}

// Background starts fn alongside the server. Its context is cancelled when
// shutdown begins and the server waits for it to return before running
// shutdown hooks. A task failing on its own triggers shutdown.
//
// Example:
//
//	reek.Background(store.Listen)
func Background(fn func(context.Context) error) RunOption {
	return func(c *runConfig) {
		if fn != nil {
			c.background = append(c.background, fn)
		}
	}
}

// WithContext sets the parent of the signal context; cancelling it shuts
// the server down like SIGTERM does.
func WithContext(ctx context.Context) RunOption {
	return func(c *runConfig) {
		if ctx != nil {
			c.baseCtx = ctx
		}
	}
}
