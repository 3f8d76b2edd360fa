package usecase

import "time"

const (
	// ImportChunkSize is the number of activities per bulk import request.
	ImportChunkSize = 10

	// DefaultLookupCacheTTL is how long a symbol lookup result is reused.
	DefaultLookupCacheTTL = 24 * time.Hour

	// DefaultRunLockTTL bounds how long a crashed run can block the account.
	DefaultRunLockTTL = 15 * time.Minute

	// Currency units with a fixed minor/major relation.
	currencyPound = "GBP"
	currencyPence = "GBp"
)
