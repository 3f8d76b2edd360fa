// Package app wires configuration into a ready-to-run sync pipeline.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iho/ledgersync/internal/adapter/debugdump"
	"github.com/iho/ledgersync/internal/adapter/ghostfolio"
	"github.com/iho/ledgersync/internal/adapter/http/handler"
	"github.com/iho/ledgersync/internal/adapter/ibkr"
	memoryRepo "github.com/iho/ledgersync/internal/adapter/repository/memory"
	postgresRepo "github.com/iho/ledgersync/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/ledgersync/internal/adapter/repository/redis"
	"github.com/iho/ledgersync/internal/domain"
	"github.com/iho/ledgersync/internal/infrastructure/config"
	"github.com/iho/ledgersync/internal/infrastructure/metrics"
	"github.com/iho/ledgersync/internal/infrastructure/postgres"
	"github.com/iho/ledgersync/internal/infrastructure/redis"
	"github.com/iho/ledgersync/internal/usecase"
)

const (
	memoryRunHistory     = 100
	memoryCacheCleanup   = 10 * time.Minute
	backendConnectBudget = 10 * time.Second
)

// App holds the wired pipeline and the backends it owns.
type App struct {
	Sync     *usecase.SyncUseCase
	Plan     *usecase.ReconciliationUseCase
	Ledger   *ghostfolio.Client
	Metrics  *metrics.Metrics
	Registry *prometheus.Registry

	// HealthChecks probe the optional backends that were configured.
	HealthChecks []handler.HealthCheck

	pool        *pgxpool.Pool
	redisClient *goredis.Client
}

// New connects the configured backends and builds the pipeline.
// Postgres and Redis are optional; without them run history, lookup cache and run lock stay in process.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*App, error) {
	a := &App{Registry: prometheus.NewRegistry()}
	a.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	a.Metrics = metrics.NewWithRegisterer(a.Registry)

	connectCtx, cancel := context.WithTimeout(ctx, backendConnectBudget)
	defer cancel()

	var runs usecase.RunRepository = memoryRepo.NewSyncRunRepository(memoryRunHistory)
	if cfg.DatabaseURL != "" {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		pool, err := postgres.NewPoolWithConfig(connectCtx, postgres.PoolConfig{
			DatabaseURL: cfg.DatabaseURL,
			MaxConns:    cfg.DatabaseMaxConns,
			MinConns:    cfg.DatabaseMinConns,
		})
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		a.pool = pool
		a.HealthChecks = append(a.HealthChecks, handler.HealthCheck{Name: "postgres", Ping: pool.Ping})
		runs = postgresRepo.NewSyncRunRepository(pool, logger)
		logger.Info().Msg("connected to postgres")
	}

	var cache usecase.Cache = memoryRepo.NewCache(cfg.CacheTTL, memoryCacheCleanup)
	var locker usecase.RunLocker = usecase.NewLocalRunLocker()
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(connectCtx, redis.Config{URL: cfg.RedisURL})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		a.redisClient = client
		a.HealthChecks = append(a.HealthChecks, handler.HealthCheck{
			Name: "redis",
			Ping: func(ctx context.Context) error { return client.Ping(ctx).Err() },
		})
		cache = redisRepo.NewCache(client)
		locker = redisRepo.NewRunLock(client, lockOwner())
		logger.Info().Msg("connected to redis")
	}

	a.Ledger = ghostfolio.NewClient(ghostfolio.Config{
		Host:    cfg.GhostHost,
		Token:   cfg.GhostToken,
		Timeout: cfg.HTTPClientTimeout,
	}, logger)

	broker := ibkr.NewClient(ibkr.Config{
		Token:          cfg.IBKRToken,
		QueryID:        cfg.IBKRQuery,
		BaseURL:        cfg.IBKRBaseURL,
		Timeout:        cfg.HTTPClientTimeout,
		MaxElapsedTime: cfg.IBKRPollTimeout,
	}, logger)

	resolver := usecase.NewOverrideTickerResolver(domain.DefaultTickerOverrides(), a.Ledger, cache, cfg.CacheTTL, logger)

	var dumper usecase.DebugDumper
	if cfg.WriteDebugFiles {
		dumper = debugdump.NewWriter(cfg.FileWriteLocation, logger)
	}

	a.Sync = usecase.NewSyncUseCase(usecase.SyncDeps{
		Ledger:   a.Ledger,
		Broker:   broker,
		Resolver: resolver,
		Locker:   locker,
		Runs:     runs,
		Dumper:   dumper,
		Observer: a.Metrics,
		IDGen:    postgresRepo.NewULIDGenerator(),
		Account: usecase.AccountSettings{
			Name:         cfg.GhostAccountName,
			Currency:     cfg.GhostCurrency,
			PlatformID:   cfg.GhostPlatformID,
			PlatformName: cfg.GhostPlatformName,
		},
		LockTTL: cfg.LockTTL,
		Logger:  logger,
	})
	a.Plan = usecase.NewReconciliationUseCase(a.Ledger, broker, resolver, cfg.GhostAccountName, logger)

	return a, nil
}

// Close releases the backends opened by New.
func (a *App) Close() {
	if a.redisClient != nil {
		a.redisClient.Close()
	}
	if a.pool != nil {
		a.pool.Close()
	}
}

func lockOwner() string {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	return host + "/" + postgresRepo.NewULIDGenerator().Generate()
}
