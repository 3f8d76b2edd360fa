package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Ledger (Ghostfolio)
	GhostHost         string `env:"GHOST_HOST"          envDefault:"https://ghostfol.io"`
	GhostToken        string `env:"GHOST_TOKEN"`
	GhostCurrency     string `env:"GHOST_CURRENCY"      envDefault:"USD"`
	GhostAccountName  string `env:"GHOST_ACCOUNT_NAME"  envDefault:"IBKR"`
	GhostPlatformID   string `env:"GHOST_PLATFORM_ID"`
	GhostPlatformName string `env:"GHOST_PLATFORM_NAME" envDefault:"Interactive Brokers"`

	// Broker (IBKR Flex Web Service)
	IBKRToken       string        `env:"IBKR_TOKEN"`
	IBKRQuery       string        `env:"IBKR_QUERY"`
	IBKRBaseURL     string        `env:"IBKR_BASE_URL"      envDefault:"https://ndcdyn.interactivebrokers.com/AccountManagement/FlexWebService"`
	IBKRPollTimeout time.Duration `env:"IBKR_POLL_TIMEOUT"  envDefault:"3m"`

	HTTPClientTimeout time.Duration `env:"HTTP_CLIENT_TIMEOUT" envDefault:"60s"`

	// Sync
	WriteDebugFiles   bool          `env:"WRITE_DEBUG_FILES"   envDefault:"false"`
	FileWriteLocation string        `env:"FILE_WRITE_LOCATION" envDefault:""`
	CacheTTL          time.Duration `env:"CACHE_TTL"           envDefault:"24h"`
	LockTTL           time.Duration `env:"LOCK_TTL"            envDefault:"15m"`

	// Database (optional - leave empty to keep run history in memory)
	DatabaseURL      string `env:"DATABASE_URL"       envDefault:""`
	DatabaseMaxConns int    `env:"DATABASE_MAX_CONNS" envDefault:"5"`
	DatabaseMinConns int    `env:"DATABASE_MIN_CONNS" envDefault:"0"`
	MigrationsPath   string `env:"MIGRATIONS_PATH"    envDefault:"migrations"`

	// Redis (optional - leave empty for in-process cache and lock)
	RedisURL string `env:"REDIS_URL" envDefault:""`

	// HTTP Server
	HTTPPort            string        `env:"HTTP_PORT"             envDefault:"8080"`
	HTTPReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"30s"`
	HTTPWriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"5m"`
	HTTPIdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT"     envDefault:"60s"`
	HTTPShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load loads configuration from environment variables, reading a .env file first when present.
// Variables already set in the environment win over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// ValidateSync reports missing settings required to run a sync.
func (c *Config) ValidateSync() error {
	required := []struct{ name, value string }{
		{"GHOST_TOKEN", c.GhostToken},
		{"IBKR_TOKEN", c.IBKRToken},
		{"IBKR_QUERY", c.IBKRQuery},
	}

	var missing []error
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, fmt.Errorf("%s is required", r.name))
		}
	}
	return errors.Join(missing...)
}
