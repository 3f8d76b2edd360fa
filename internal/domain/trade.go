package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetCategory is the broker's instrument class.
type AssetCategory string

const (
	AssetCategoryStock  AssetCategory = "STK"
	AssetCategoryOption AssetCategory = "OPT"
	AssetCategoryFuture AssetCategory = "FUT"
	AssetCategoryCash   AssetCategory = "CASH"
	AssetCategoryBond   AssetCategory = "BOND"
	AssetCategoryCrypto AssetCategory = "CRYPTO"
)

// BuySell is the broker's trade side.
type BuySell string

const (
	BuySellBuy  BuySell = "BUY"
	BuySellSell BuySell = "SELL"
)

// BrokerTrade is one trade row of the broker export.
type BrokerTrade struct {
	AssetCategory      AssetCategory
	OpenCloseIndicator string
	TradeDate          time.Time
	Symbol             string
	ISIN               string
	BuySell            BuySell
	TradePrice         decimal.Decimal
	Currency           string
	Taxes              decimal.Decimal
	Commission         decimal.Decimal
	CommissionCurrency string
	Quantity           decimal.Decimal
	TransactionID      string
}

// Cash pool names of the broker cash report.
const (
	CashPoolEndingCash      = "endingCash"
	CashPoolEndingCashPaxos = "endingCashPaxos"
)

// CashReportEntry holds the named cash pools of one cash report row.
// A pool missing from Pools was absent in the export.
type CashReportEntry struct {
	Currency string
	Pools    map[string]decimal.Decimal
}

// BrokerReport is the broker export of one sync run.
type BrokerReport struct {
	Trades []BrokerTrade
	Cash   []CashReportEntry
}
