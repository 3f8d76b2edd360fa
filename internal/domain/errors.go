package domain

import "errors"

var (
	// Ledger errors
	ErrRestrictedView     = errors.New("ledger restricted view is active")
	ErrAccountUnavailable = errors.New("ledger sync account unavailable")
	ErrImportFailed       = errors.New("activity import failed")

	// Normalization errors
	ErrTickerNotFound          = errors.New("no ticker found")
	ErrUnsupportedCurrencyPair = errors.New("unsupported trade/ticker currency pair")
	ErrUnknownSide             = errors.New("unknown trade side")

	// Broker errors
	ErrStatementNotReady = errors.New("broker statement generation in progress")

	// Run errors
	ErrSyncInProgress = errors.New("sync already running for account")
)
