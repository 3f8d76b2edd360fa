package app

import (
	"context"
	"fmt"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/ledgersync/internal/infrastructure/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("GHOST_TOKEN", "ghost")
	t.Setenv("IBKR_TOKEN", "flex")
	t.Setenv("IBKR_QUERY", "123")

	cfg, err := config.Load()
	require.NoError(t, err)
	return cfg
}

func TestNew_InProcessBackends(t *testing.T) {
	cfg := testConfig(t)

	a, err := New(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer a.Close()

	assert.NotNil(t, a.Sync)
	assert.NotNil(t, a.Plan)
	assert.NotNil(t, a.Ledger)
	assert.Empty(t, a.HealthChecks)

	runs, err := a.Sync.RecentRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestNew_WithRedis(t *testing.T) {
	s := miniredis.RunT(t)
	cfg := testConfig(t)
	cfg.RedisURL = fmt.Sprintf("redis://%s", s.Addr())

	a, err := New(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer a.Close()

	require.Len(t, a.HealthChecks, 1)
	assert.Equal(t, "redis", a.HealthChecks[0].Name)
	assert.NoError(t, a.HealthChecks[0].Ping(context.Background()))
}

func TestNew_RedisUnavailable(t *testing.T) {
	cfg := testConfig(t)
	cfg.RedisURL = "://bad-url"

	_, err := New(context.Background(), cfg, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect to redis")
}

func TestLockOwnerIsUnique(t *testing.T) {
	assert.NotEqual(t, lockOwner(), lockOwner())
}
