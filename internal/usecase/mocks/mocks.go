package mocks

import (
	"context"
	"strconv"
	"sync"

	"github.com/iho/ledgersync/internal/domain"
)

// FakeLedger is an in-memory ledger implementing usecase.LedgerClient.
// Imported activities are read back the way the real ledger returns them:
// symbol nested in the profile and dates with milliseconds and zone.
type FakeLedger struct {
	mu         sync.RWMutex
	accounts   []domain.Account
	activities []domain.Activity
	symbols    map[string][]domain.Ticker
	platforms  map[string]string
	restricted bool
	nextID     int

	ImportCalls [][]domain.Activity
	UpdateCalls []domain.Account

	ImportActivitiesFunc func(ctx context.Context, activities []domain.Activity) error
	ListActivitiesFunc   func(ctx context.Context, accountID string) ([]domain.Activity, error)
	UpdateAccountFunc    func(ctx context.Context, account domain.Account) error
	LookupSymbolFunc     func(ctx context.Context, query string) ([]domain.Ticker, error)
}

func NewFakeLedger() *FakeLedger {
	return &FakeLedger{
		symbols:   make(map[string][]domain.Ticker),
		platforms: make(map[string]string),
	}
}

// AddAccount seeds an existing account.
func (f *FakeLedger) AddAccount(account domain.Account) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts = append(f.accounts, account)
}

// AddActivity seeds an existing activity verbatim.
func (f *FakeLedger) AddActivity(activity domain.Activity) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.activities = append(f.activities, activity)
}

// AddSymbol registers a lookup result for query.
func (f *FakeLedger) AddSymbol(query string, tickers ...domain.Ticker) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.symbols[query] = append(f.symbols[query], tickers...)
}

// AddPlatform registers a platform id by name.
func (f *FakeLedger) AddPlatform(name, id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.platforms[name] = id
}

// SetRestricted toggles the restricted view.
func (f *FakeLedger) SetRestricted(restricted bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.restricted = restricted
}

// Accounts returns a snapshot of the stored accounts.
func (f *FakeLedger) Accounts() []domain.Account {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]domain.Account(nil), f.accounts...)
}

// Activities returns a snapshot of the stored activities.
func (f *FakeLedger) Activities() []domain.Activity {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]domain.Activity(nil), f.activities...)
}

func (f *FakeLedger) ListActivities(ctx context.Context, accountID string) ([]domain.Activity, error) {
	if f.ListActivitiesFunc != nil {
		return f.ListActivitiesFunc(ctx, accountID)
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []domain.Activity
	for _, a := range f.activities {
		if a.AccountID == accountID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *FakeLedger) ImportActivities(ctx context.Context, activities []domain.Activity) error {
	f.mu.Lock()
	f.ImportCalls = append(f.ImportCalls, append([]domain.Activity(nil), activities...))
	f.mu.Unlock()

	if f.ImportActivitiesFunc != nil {
		if err := f.ImportActivitiesFunc(ctx, activities); err != nil {
			return err
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range activities {
		stored := a
		stored.SymbolProfile = &domain.SymbolProfile{Symbol: a.Symbol, Currency: a.Currency, DataSource: a.DataSource}
		stored.Symbol = ""
		stored.Date = a.Date + ".000Z"
		f.activities = append(f.activities, stored)
	}
	return nil
}

func (f *FakeLedger) UpdateAccount(ctx context.Context, account domain.Account) error {
	f.mu.Lock()
	f.UpdateCalls = append(f.UpdateCalls, account)
	f.mu.Unlock()

	if f.UpdateAccountFunc != nil {
		return f.UpdateAccountFunc(ctx, account)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.accounts {
		if f.accounts[i].ID == account.ID {
			f.accounts[i] = account
		}
	}
	return nil
}

func (f *FakeLedger) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return f.Accounts(), nil
}

func (f *FakeLedger) CreateAccount(ctx context.Context, account domain.Account) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	account.ID = "account-" + strconv.Itoa(f.nextID)
	f.accounts = append(f.accounts, account)
	return account.ID, nil
}

func (f *FakeLedger) FindPlatformID(ctx context.Context, platformName string) (string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.platforms[platformName], nil
}

func (f *FakeLedger) IsRestrictedView(ctx context.Context) (bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.restricted, nil
}

func (f *FakeLedger) SetRestrictedView(ctx context.Context, enabled bool) error {
	f.SetRestricted(enabled)
	return nil
}

func (f *FakeLedger) LookupSymbol(ctx context.Context, query string) ([]domain.Ticker, error) {
	if f.LookupSymbolFunc != nil {
		return f.LookupSymbolFunc(ctx, query)
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.symbols[query], nil
}

// StaticBroker returns the same report on every fetch.
type StaticBroker struct {
	Report *domain.BrokerReport
	Err    error
	Calls  int
}

func (b *StaticBroker) FetchReport(ctx context.Context) (*domain.BrokerReport, error) {
	b.Calls++
	if b.Err != nil {
		return nil, b.Err
	}
	return b.Report, nil
}
