package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/ledgersync/internal/domain"
)

// OverrideTickerResolver consults a fixed override table before the ledger's symbol lookup.
// Lookup results are memoized in cache, keyed by the query string.
type OverrideTickerResolver struct {
	overrides domain.TickerOverrides
	lookup    SymbolLookup
	cache     Cache
	ttl       time.Duration
	logger    zerolog.Logger
}

// NewOverrideTickerResolver creates a new OverrideTickerResolver.
func NewOverrideTickerResolver(
	overrides domain.TickerOverrides,
	lookup SymbolLookup,
	cache Cache,
	ttl time.Duration,
	logger zerolog.Logger,
) *OverrideTickerResolver {
	if ttl <= 0 {
		ttl = DefaultLookupCacheTTL
	}
	return &OverrideTickerResolver{
		overrides: overrides,
		lookup:    lookup,
		cache:     cache,
		ttl:       ttl,
		logger:    logger,
	}
}

// Resolve tries the override table, then the ISIN, then the raw symbol.
func (r *OverrideTickerResolver) Resolve(ctx context.Context, isin, symbol string) (domain.Ticker, bool) {
	if t, ok := r.overrides.Lookup(isin); ok {
		r.logger.Debug().Str("isin", isin).Str("symbol", t.Symbol).Msg("ticker override applied")
		return t, true
	}

	if isin != "" {
		if t, ok := r.lookupQuery(ctx, isin); ok {
			return t, true
		}
	}

	if symbol != "" {
		if t, ok := r.lookupQuery(ctx, symbol); ok {
			return t, true
		}
	}

	return domain.Ticker{}, false
}

func (r *OverrideTickerResolver) lookupQuery(ctx context.Context, query string) (domain.Ticker, bool) {
	key := "symbol-lookup:" + query

	if r.cache != nil {
		raw, err := r.cache.Get(ctx, key)
		if err == nil {
			var cached domain.Ticker
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, true
			}
		} else if !errors.Is(err, ErrCacheMiss) {
			r.logger.Warn().Err(err).Str("query", query).Msg("lookup cache read failed")
		}
	}

	items, err := r.lookup.LookupSymbol(ctx, query)
	if err != nil {
		// Treated as no match so the next query gets a chance.
		r.logger.Warn().Err(err).Str("query", query).Msg("symbol lookup failed")
		return domain.Ticker{}, false
	}
	if len(items) == 0 {
		return domain.Ticker{}, false
	}
	if len(items) > 1 {
		r.logger.Info().Str("query", query).Int("matches", len(items)).Str("picked", items[0].Symbol).Msg("fuzzy symbol match, using first result")
	}

	t := domain.Ticker{
		DataSource: domain.DataSourceYahoo,
		Symbol:     items[0].Symbol,
		Currency:   items[0].Currency,
	}

	if r.cache != nil {
		raw, err := json.Marshal(t)
		if err == nil {
			err = r.cache.Set(ctx, key, raw, r.ttl)
		}
		if err != nil {
			r.logger.Warn().Err(err).Str("query", query).Msg("lookup cache write failed")
		}
	}

	return t, true
}
