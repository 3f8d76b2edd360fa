package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/iho/ledgersync/internal/domain"
	"github.com/iho/ledgersync/internal/usecase"
	"github.com/iho/ledgersync/internal/usecase/mocks"
)

type mapCache struct {
	values map[string][]byte
	ttls   map[string]time.Duration
}

func newMapCache() *mapCache {
	return &mapCache{values: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *mapCache) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := c.values[key]
	if !ok {
		return nil, usecase.ErrCacheMiss
	}
	return v, nil
}

func (c *mapCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.values[key] = value
	c.ttls[key] = ttl
	return nil
}

func (c *mapCache) Delete(_ context.Context, key string) error {
	delete(c.values, key)
	return nil
}

func TestTickerResolver_OverrideSkipsLookup(t *testing.T) {
	ctrl := gomock.NewController(t)
	lookup := mocks.NewMockSymbolLookup(ctrl)

	r := usecase.NewOverrideTickerResolver(domain.DefaultTickerOverrides(), lookup, nil, 0, zerolog.Nop())

	got, ok := r.Resolve(context.Background(), "US09075V1026", "BNTX")
	assert.True(t, ok)
	assert.Equal(t, domain.Ticker{DataSource: domain.DataSourceYahoo, Symbol: "BNTX", Currency: "USD"}, got)
}

func TestTickerResolver_FallsBackToSymbol(t *testing.T) {
	ctrl := gomock.NewController(t)
	lookup := mocks.NewMockSymbolLookup(ctrl)

	gomock.InOrder(
		lookup.EXPECT().LookupSymbol(gomock.Any(), "US0378331005").Return(nil, errors.New("timeout")),
		lookup.EXPECT().LookupSymbol(gomock.Any(), "AAPL").Return([]domain.Ticker{
			{Symbol: "AAPL", Currency: "USD", DataSource: "EOD_HISTORICAL_DATA"},
			{Symbol: "AAPL.MX", Currency: "MXN"},
		}, nil),
	)

	r := usecase.NewOverrideTickerResolver(domain.TickerOverrides{}, lookup, nil, 0, zerolog.Nop())

	got, ok := r.Resolve(context.Background(), "US0378331005", "AAPL")
	assert.True(t, ok)
	assert.Equal(t, usTicker, got, "first match wins and is attributed to yahoo")
}

func TestTickerResolver_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	lookup := mocks.NewMockSymbolLookup(ctrl)
	lookup.EXPECT().LookupSymbol(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)

	r := usecase.NewOverrideTickerResolver(domain.TickerOverrides{}, lookup, nil, 0, zerolog.Nop())

	_, ok := r.Resolve(context.Background(), "XX0000000000", "NOPE")
	assert.False(t, ok)
}

func TestTickerResolver_CachesLookups(t *testing.T) {
	ctrl := gomock.NewController(t)
	lookup := mocks.NewMockSymbolLookup(ctrl)
	lookup.EXPECT().LookupSymbol(gomock.Any(), "US0378331005").Return([]domain.Ticker{usTicker}, nil).Times(1)

	cache := newMapCache()
	r := usecase.NewOverrideTickerResolver(domain.TickerOverrides{}, lookup, cache, time.Hour, zerolog.Nop())

	for i := 0; i < 3; i++ {
		got, ok := r.Resolve(context.Background(), "US0378331005", "AAPL")
		assert.True(t, ok)
		assert.Equal(t, usTicker, got)
	}
	assert.Equal(t, time.Hour, cache.ttls["symbol-lookup:US0378331005"])
}
