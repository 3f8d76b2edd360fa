package usecase

import (
	"context"
	"fmt"
	"regexp"
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/ledgersync/internal/domain"
)

var (
	hundred = decimal.NewFromInt(100)

	// settlementVenueSuffix matches broker venue notation such as "BTC.USD-PAXOS".
	settlementVenueSuffix = regexp.MustCompile(`\.([A-Z]{3})-PAXOS$`)
)

// NormalizeResult holds the activities built from a broker report.
type NormalizeResult struct {
	Activities []domain.Activity
	Skipped    map[domain.AssetCategory]int
}

// Normalizer converts broker trades into ledger activities.
type Normalizer struct {
	resolver TickerResolver
	logger   zerolog.Logger
}

// NewNormalizer creates a new Normalizer.
func NewNormalizer(resolver TickerResolver, logger zerolog.Logger) *Normalizer {
	return &Normalizer{
		resolver: resolver,
		logger:   logger,
	}
}

// Normalize converts every stock trade and counts the others per category.
// The first trade that cannot be converted fails the whole batch.
func (n *Normalizer) Normalize(ctx context.Context, accountID string, trades []domain.BrokerTrade) (*NormalizeResult, error) {
	result := &NormalizeResult{
		Activities: make([]domain.Activity, 0, len(trades)),
		Skipped:    make(map[domain.AssetCategory]int),
	}

	for _, trade := range trades {
		if trade.AssetCategory != domain.AssetCategoryStock {
			n.logger.Debug().Str("category", string(trade.AssetCategory)).Str("symbol", trade.Symbol).Msg("ignoring non-stock trade")
			result.Skipped[trade.AssetCategory]++
			continue
		}

		activity, err := n.NormalizeTrade(ctx, accountID, trade)
		if err != nil {
			return nil, err
		}
		result.Activities = append(result.Activities, activity)
	}

	if len(result.Skipped) > 0 {
		n.logger.Info().Str("skipped", formatSkipped(result.Skipped)).Msg("skipped non-stock trades")
	}

	return result, nil
}

// NormalizeTrade converts one stock trade.
func (n *Normalizer) NormalizeTrade(ctx context.Context, accountID string, trade domain.BrokerTrade) (domain.Activity, error) {
	if trade.OpenCloseIndicator == "" {
		n.logger.Warn().Str("transaction_id", trade.TransactionID).Str("symbol", trade.Symbol).Msg("trade has no open/close indicator")
	}

	activityType, err := mapSide(trade.BuySell)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("trade %s: %w", trade.TransactionID, err)
	}

	symbol := remapVenueSymbol(trade.Symbol)

	ticker, ok := n.resolver.Resolve(ctx, trade.ISIN, symbol)
	if !ok {
		return domain.Activity{}, fmt.Errorf("%w for isin=%q symbol=%q (trade %s)", domain.ErrTickerNotFound, trade.ISIN, symbol, trade.TransactionID)
	}

	unitPrice := trade.TradePrice
	currency := trade.Currency
	fee := trade.Taxes

	switch {
	case trade.Currency == ticker.Currency:
		fee = fee.Add(trade.Commission.Neg())
	case trade.Currency == currencyPound && ticker.Currency == currencyPence:
		n.logger.Debug().Str("symbol", ticker.Symbol).Msg("converting GBP to GBp")
		unitPrice = unitPrice.Mul(hundred)
		currency = currencyPence
		if trade.CommissionCurrency == currencyPound {
			fee = fee.Add(trade.Commission.Mul(hundred).Neg())
		}
	default:
		return domain.Activity{}, fmt.Errorf("%w: trade %s in %s, ticker %s quoted in %s",
			domain.ErrUnsupportedCurrencyPair, trade.TransactionID, trade.Currency, ticker.Symbol, ticker.Currency)
	}

	activity := domain.Activity{
		AccountID:  accountID,
		Currency:   currency,
		DataSource: ticker.DataSource,
		Date:       trade.TradeDate.Format(domain.ActivityDateLayout),
		Fee:        fee,
		Quantity:   trade.Quantity.Abs(),
		Symbol:     ticker.Symbol,
		Type:       activityType,
		UnitPrice:  unitPrice,
		Comment:    domain.TransactionTag(trade.TransactionID),
	}

	if err := domain.ValidateActivity(activity); err != nil {
		return domain.Activity{}, fmt.Errorf("trade %s: %w", trade.TransactionID, err)
	}

	return activity, nil
}

func mapSide(side domain.BuySell) (domain.ActivityType, error) {
	switch side {
	case domain.BuySellBuy:
		return domain.ActivityTypeBuy, nil
	case domain.BuySellSell:
		return domain.ActivityTypeSell, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownSide, side)
	}
}

// remapVenueSymbol turns "BTC.USD-PAXOS" into "BTCUSD".
func remapVenueSymbol(symbol string) string {
	m := settlementVenueSuffix.FindStringSubmatchIndex(symbol)
	if m == nil {
		return symbol
	}
	return symbol[:m[0]] + symbol[m[2]:m[3]]
}

func formatSkipped(skipped map[domain.AssetCategory]int) string {
	keys := make([]string, 0, len(skipped))
	for k := range skipped {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)

	out := ""
	for i, k := range keys {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s: %d", k, skipped[domain.AssetCategory(k)])
	}
	return "{" + out + "}"
}
