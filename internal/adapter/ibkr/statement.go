package ibkr

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/ledgersync/internal/domain"
)

// baseSummaryCurrency marks the cash report row converted to the base currency.
const baseSummaryCurrency = "BASE_SUMMARY"

// Flex exports format dates per query settings.
var tradeDateLayouts = []string{"20060102", "2006-01-02", "01/02/2006"}

type flexQueryResponse struct {
	XMLName        xml.Name        `xml:"FlexQueryResponse"`
	QueryName      string          `xml:"queryName,attr"`
	FlexStatements []flexStatement `xml:"FlexStatements>FlexStatement"`
}

type flexStatement struct {
	AccountID  string         `xml:"accountId,attr"`
	FromDate   string         `xml:"fromDate,attr"`
	ToDate     string         `xml:"toDate,attr"`
	Trades     []flexTrade    `xml:"Trades>Trade"`
	CashReport []flexCashLine `xml:"CashReport>CashReportCurrency"`
}

type flexTrade struct {
	AssetCategory        string `xml:"assetCategory,attr"`
	Symbol               string `xml:"symbol,attr"`
	ISIN                 string `xml:"isin,attr"`
	Currency             string `xml:"currency,attr"`
	TradeDate            string `xml:"tradeDate,attr"`
	BuySell              string `xml:"buySell,attr"`
	Quantity             string `xml:"quantity,attr"`
	TradePrice           string `xml:"tradePrice,attr"`
	Taxes                string `xml:"taxes,attr"`
	IBCommission         string `xml:"ibCommission,attr"`
	IBCommissionCurrency string `xml:"ibCommissionCurrency,attr"`
	OpenCloseIndicator   string `xml:"openCloseIndicator,attr"`
	TransactionID        string `xml:"transactionID,attr"`
}

type flexCashLine struct {
	Currency        string `xml:"currency,attr"`
	EndingCash      string `xml:"endingCash,attr"`
	EndingCashPaxos string `xml:"endingCashPaxos,attr"`
}

// ParseStatement decodes a FlexQueryResponse document.
// Only the first statement is read, matching single-account queries.
func ParseStatement(r io.Reader) (*domain.BrokerReport, error) {
	var resp flexQueryResponse
	if err := xml.NewDecoder(r).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode flex statement: %w", err)
	}
	if len(resp.FlexStatements) == 0 {
		return nil, fmt.Errorf("flex query %q returned no statements", resp.QueryName)
	}

	stmt := resp.FlexStatements[0]
	report := &domain.BrokerReport{Trades: make([]domain.BrokerTrade, 0, len(stmt.Trades))}

	for i, t := range stmt.Trades {
		trade, err := t.toDomain()
		if err != nil {
			return nil, fmt.Errorf("trade %d (transaction %s): %w", i, t.TransactionID, err)
		}
		report.Trades = append(report.Trades, trade)
	}

	if line, ok := pickCashLine(stmt.CashReport); ok {
		entry, err := line.toDomain()
		if err != nil {
			return nil, fmt.Errorf("cash report %s: %w", line.Currency, err)
		}
		report.Cash = []domain.CashReportEntry{entry}
	}

	return report, nil
}

// pickCashLine prefers the base-currency summary and falls back to the first row.
func pickCashLine(lines []flexCashLine) (flexCashLine, bool) {
	for _, l := range lines {
		if l.Currency == baseSummaryCurrency {
			return l, true
		}
	}
	if len(lines) == 0 {
		return flexCashLine{}, false
	}
	return lines[0], true
}

func (t flexTrade) toDomain() (domain.BrokerTrade, error) {
	date, err := parseTradeDate(t.TradeDate)
	if err != nil {
		return domain.BrokerTrade{}, err
	}

	var fields [4]decimal.Decimal
	for i, raw := range []string{t.TradePrice, t.Taxes, t.IBCommission, t.Quantity} {
		if fields[i], err = parseAmount(raw); err != nil {
			return domain.BrokerTrade{}, err
		}
	}

	return domain.BrokerTrade{
		AssetCategory:      domain.AssetCategory(t.AssetCategory),
		OpenCloseIndicator: t.OpenCloseIndicator,
		TradeDate:          date,
		Symbol:             t.Symbol,
		ISIN:               t.ISIN,
		BuySell:            domain.BuySell(t.BuySell),
		TradePrice:         fields[0],
		Currency:           t.Currency,
		Taxes:              fields[1],
		Commission:         fields[2],
		CommissionCurrency: t.IBCommissionCurrency,
		Quantity:           fields[3],
		TransactionID:      t.TransactionID,
	}, nil
}

func (l flexCashLine) toDomain() (domain.CashReportEntry, error) {
	entry := domain.CashReportEntry{Currency: l.Currency, Pools: make(map[string]decimal.Decimal, 2)}
	for pool, raw := range map[string]string{
		domain.CashPoolEndingCash:      l.EndingCash,
		domain.CashPoolEndingCashPaxos: l.EndingCashPaxos,
	} {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		v, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return entry, fmt.Errorf("pool %s: %w", pool, err)
		}
		entry.Pools[pool] = v
	}
	return entry, nil
}

func parseTradeDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	// Some queries append the time after a semicolon.
	if i := strings.IndexByte(raw, ';'); i >= 0 {
		raw = raw[:i]
	}
	for _, layout := range tradeDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized trade date %q", raw)
}

func parseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw)
}
