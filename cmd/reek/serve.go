package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/reek"
	"github.com/dmitrymomot/reek/middlewares"
	"github.com/dmitrymomot/reek/pkg/db"
	"github.com/dmitrymomot/reek/pkg/logger"
	"github.com/dmitrymomot/reek/pkg/pages"
	"github.com/dmitrymomot/reek/pkg/redis"
	"github.com/dmitrymomot/reek/pkg/views"
)

func newServeCmd() *cobra.Command {
	var (
		address  string
		seedFile string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the page tree over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if address != "" {
				cfg.Address = address
			}
			if seedFile != "" {
				cfg.SeedFile = seedFile
			}

			log := logger.New(cfg.Log, os.Stdout, middlewares.RequestIDExtractor(), reek.PageExtractor())
			ctx := cmd.Context()

			s, err := openSite(ctx, cfg, log)
			if err != nil {
				return err
			}

			if cfg.SeedFile != "" {
				res, err := s.seed(ctx, cfg.SeedFile)
				if err != nil {
					return errors.Join(err, s.Close())
				}
				log.InfoContext(ctx, "seed applied",
					slog.String("file", cfg.SeedFile),
					slog.Int("created", res.Created),
					slog.Int("updated", res.Updated),
					slog.Int("contents", res.Contents),
				)
			}

			app, err := newServer(cmd, s)
			if err != nil {
				return errors.Join(err, s.Close())
			}

			return app.Run(cfg.Address,
				reek.WithContext(ctx),
				reek.Logger(log),
				reek.Background(s.store.Listen),
				reek.ShutdownHook(func(context.Context) error { return s.Close() }),
			)
		},
	}

	cmd.Flags().StringVarP(&address, "address", "a", "", "listen address (env HTTP_ADDRESS)")
	cmd.Flags().StringVar(&seedFile, "seed", "", "YAML seed file applied before serving (env SEED_FILE)")

	return cmd
}

// newServer wires the resolver, reverse index, metrics and health checks
// of s into an App.
func newServer(cmd *cobra.Command, s *site) (*reek.App, error) {
	ctx := cmd.Context()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	opts := []pages.Option{
		pages.WithLogger(s.log),
		pages.WithMetrics(pages.NewMetrics(pages.WithMetricsRegistry(registry))),
	}

	store, err := s.candidates(ctx)
	if err != nil {
		return nil, err
	}
	resolver := pages.NewResolver(store, s.registry, opts...)
	index := pages.NewReverseIndex(store, s.registry, opts...)
	s.closers = append(s.closers, resolver.Close, index.Close)

	checks := []reek.HealthOption{
		reek.WithReadinessCheck("database", db.Healthcheck(s.conn)),
	}
	if s.redis != nil {
		checks = append(checks, reek.WithReadinessCheck("redis", redis.Healthcheck(s.redis)))
	}

	pageOpts := []reek.PagesOption{reek.WithReverse(index)}
	if s.cfg.AppendSlash {
		pageOpts = append(pageOpts, reek.WithAppendSlash())
	}

	return reek.New(
		reek.WithLogger(s.log),
		reek.WithMiddleware(
			middlewares.RequestID(),
			middlewares.AccessLog("/health/live", "/health/ready", reek.DefaultMetricsPath),
			middlewares.Recover(),
			middlewares.Timeout(s.cfg.RequestTimeout),
		),
		reek.WithPages(resolver, pageOpts...),
		reek.WithMetrics(registry),
		reek.WithHealthChecks(checks...),
		reek.WithErrorHandler(errorPage),
	), nil
}

// errorPage renders failures as a small HTML document. Causes of 5xx
// errors are logged, never shown.
func errorPage(c reek.Context, err error) error {
	httpErr := reek.ToHTTPError(err)
	if httpErr.Code >= http.StatusInternalServerError {
		c.LogError("request failed", slog.Any("error", err))
	}
	return c.Render(httpErr.Code, views.Document(httpErr.StatusText(), httpErr.Message))
}
