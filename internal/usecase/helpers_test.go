package usecase_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/ledgersync/internal/domain"
)

type mapResolver struct {
	tickers map[string]domain.Ticker
	calls   int
}

func (r *mapResolver) Resolve(_ context.Context, isin, symbol string) (domain.Ticker, bool) {
	r.calls++
	if t, ok := r.tickers[isin]; ok {
		return t, true
	}
	t, ok := r.tickers[symbol]
	return t, ok
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func stockTrade(id, isin, symbol string, day int) domain.BrokerTrade {
	return domain.BrokerTrade{
		AssetCategory:      domain.AssetCategoryStock,
		OpenCloseIndicator: "O",
		TradeDate:          time.Date(2024, time.March, day, 0, 0, 0, 0, time.UTC),
		Symbol:             symbol,
		ISIN:               isin,
		BuySell:            domain.BuySellBuy,
		TradePrice:         dec("10.5"),
		Currency:           "USD",
		Taxes:              dec("0"),
		Commission:         dec("-1.25"),
		CommissionCurrency: "USD",
		Quantity:           dec("4"),
		TransactionID:      id,
	}
}

func activity(id, date, symbol string) domain.Activity {
	return domain.Activity{
		AccountID:  "acc-1",
		Currency:   "USD",
		DataSource: domain.DataSourceYahoo,
		Date:       date,
		Fee:        dec("1.25"),
		Quantity:   dec("4"),
		Symbol:     symbol,
		Type:       domain.ActivityTypeBuy,
		UnitPrice:  dec("10.5"),
		Comment:    domain.TransactionTag(id),
	}
}

var usTicker = domain.Ticker{DataSource: domain.DataSourceYahoo, Symbol: "AAPL", Currency: "USD"}
