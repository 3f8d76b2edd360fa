package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/iho/ledgersync/internal/domain"
)

// ErrCacheMiss is returned by Cache.Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// ActivityReader reads the activities stored in the ledger.
type ActivityReader interface {
	ListActivities(ctx context.Context, accountID string) ([]domain.Activity, error)
}

// ActivityImporter submits one chronologically sorted chunk of activities.
// A chunk is applied entirely or not at all.
type ActivityImporter interface {
	ImportActivities(ctx context.Context, activities []domain.Activity) error
}

// AccountUpdater replaces a ledger account's metadata and balance.
type AccountUpdater interface {
	UpdateAccount(ctx context.Context, account domain.Account) error
}

// AccountDirectory finds and creates ledger accounts.
type AccountDirectory interface {
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	CreateAccount(ctx context.Context, account domain.Account) (string, error)
	FindPlatformID(ctx context.Context, platformName string) (string, error)
}

// ViewSettings reads and toggles the ledger's restricted view.
type ViewSettings interface {
	IsRestrictedView(ctx context.Context) (bool, error)
	SetRestrictedView(ctx context.Context, enabled bool) error
}

// SymbolLookup queries the ledger's instrument search.
type SymbolLookup interface {
	LookupSymbol(ctx context.Context, query string) ([]domain.Ticker, error)
}

// LedgerClient is everything the sync pipeline needs from the ledger service.
type LedgerClient interface {
	ActivityReader
	ActivityImporter
	AccountUpdater
	AccountDirectory
	ViewSettings
	SymbolLookup
}

// BrokerClient fetches the broker export of one sync run.
type BrokerClient interface {
	FetchReport(ctx context.Context) (*domain.BrokerReport, error)
}

// TickerResolver maps an instrument to its ledger ticker.
type TickerResolver interface {
	Resolve(ctx context.Context, isin, symbol string) (domain.Ticker, bool)
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// RunLocker serializes sync runs per account.
type RunLocker interface {
	// TryLock returns false without error when another run holds the key.
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key string) error
}

// RunRepository persists sync run history.
type RunRepository interface {
	Create(ctx context.Context, run *domain.SyncRun) error
	Update(ctx context.Context, run *domain.SyncRun) error
	ListRecent(ctx context.Context, limit int) ([]*domain.SyncRun, error)
}

// DebugDumper writes the activity snapshots of a run for offline inspection.
type DebugDumper interface {
	Dump(ctx context.Context, existing, normalized, diff []domain.Activity) error
}

// RunObserver is notified of every finished run.
type RunObserver interface {
	ObserveRun(run *domain.SyncRun)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}
