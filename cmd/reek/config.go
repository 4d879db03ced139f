package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/reek/pkg/db"
	"github.com/dmitrymomot/reek/pkg/logger"
	"github.com/dmitrymomot/reek/pkg/redis"
)

// Cache backends for page candidate lookups.
const (
	cacheNone   = "none"
	cacheMemory = "memory"
	cacheRedis  = "redis"
)

var errInvalidConfig = errors.New("reek: invalid configuration")

// Config is the process configuration, read from the environment.
type Config struct {
	Address string `env:"HTTP_ADDRESS" envDefault:":8080"`
	// Cache is the candidate cache backend: none, memory or redis.
	Cache    string        `env:"PAGES_CACHE" envDefault:"memory"`
	CacheTTL time.Duration `env:"PAGES_CACHE_TTL" envDefault:"5m"`
	// SeedFile is applied on serve start when set.
	SeedFile       string        `env:"SEED_FILE"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
	AppendSlash    bool          `env:"APPEND_SLASH" envDefault:"true"`
	AutoMigrate    bool          `env:"AUTO_MIGRATE" envDefault:"false"`

	Log   logger.Config
	DB    db.Config
	Redis redis.Config
}

func (c Config) validate() error {
	if !c.DB.Driver.Valid() {
		return fmt.Errorf("%w: unknown database driver %q", errInvalidConfig, c.DB.Driver)
	}
	switch c.Cache {
	case cacheNone, cacheMemory:
	case cacheRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("%w: redis cache needs REDIS_URL", errInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown cache backend %q", errInvalidConfig, c.Cache)
	}
	return nil
}

// loadConfig parses the environment and applies the persistent flags
// that were set on the command line.
func loadConfig(cmd *cobra.Command) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, errors.Join(errInvalidConfig, err)
	}

	flags := cmd.Flags()
	if flags.Changed("db-driver") {
		v, _ := flags.GetString("db-driver")
		cfg.DB.Driver = db.Dialect(v)
	}
	if flags.Changed("db-url") {
		cfg.DB.ConnectionString, _ = flags.GetString("db-url")
	}
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		cfg.Log.Format, _ = flags.GetString("log-format")
	}

	return cfg, cfg.validate()
}

// stderrLogger is the logger of commands other than serve, which keep
// stdout for their output.
func stderrLogger(cfg Config) *slog.Logger {
	return logger.New(cfg.Log, os.Stderr)
}
