package domain

// DataSourceYahoo is the data source used for remotely resolved tickers.
const DataSourceYahoo = "YAHOO"

// Ticker is the ledger's identity of an instrument.
type Ticker struct {
	DataSource string
	Symbol     string
	Currency   string
}

// TickerOverrides maps an ISIN to a hand-curated ticker.
type TickerOverrides map[string]Ticker

// DefaultTickerOverrides are known corrections for instruments the lookup resolves wrongly.
func DefaultTickerOverrides() TickerOverrides {
	return TickerOverrides{
		"DE000A3MQQ17": {DataSource: DataSourceYahoo, Symbol: "FRE.DE", Currency: "EUR"},
		"NL0015001L59": {DataSource: DataSourceYahoo, Symbol: "SHEL.L", Currency: "GBp"},
		"US09075V1026": {DataSource: DataSourceYahoo, Symbol: "BNTX", Currency: "USD"},
		"DE000A40UTE1": {DataSource: DataSourceYahoo, Symbol: "AR40.HM", Currency: "EUR"},
	}
}

// Lookup returns the override for an ISIN.
func (o TickerOverrides) Lookup(isin string) (Ticker, bool) {
	if isin == "" {
		return Ticker{}, false
	}
	t, ok := o[isin]
	return t, ok
}
