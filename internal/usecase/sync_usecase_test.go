package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/ledgersync/internal/domain"
	"github.com/iho/ledgersync/internal/usecase"
	"github.com/iho/ledgersync/internal/usecase/mocks"
)

type sequenceIDs struct{ n int }

func (s *sequenceIDs) Generate() string {
	s.n++
	return fmt.Sprintf("run-%d", s.n)
}

type recordingRuns struct {
	created []string
	updated []domain.SyncRun
}

func (r *recordingRuns) Create(_ context.Context, run *domain.SyncRun) error {
	r.created = append(r.created, run.ID)
	return nil
}

func (r *recordingRuns) Update(_ context.Context, run *domain.SyncRun) error {
	r.updated = append(r.updated, *run)
	return nil
}

func (r *recordingRuns) ListRecent(context.Context, int) ([]*domain.SyncRun, error) {
	out := make([]*domain.SyncRun, 0, len(r.updated))
	for i := range r.updated {
		out = append(out, &r.updated[i])
	}
	return out, nil
}

type countingObserver struct{ runs []*domain.SyncRun }

func (o *countingObserver) ObserveRun(run *domain.SyncRun) { o.runs = append(o.runs, run) }

type syncFixture struct {
	ledger   *mocks.FakeLedger
	broker   *mocks.StaticBroker
	runs     *recordingRuns
	locker   *usecase.LocalRunLocker
	observer *countingObserver
	uc       *usecase.SyncUseCase
}

func newSyncFixture(t *testing.T, trades int, cash string) *syncFixture {
	t.Helper()

	ledger := mocks.NewFakeLedger()
	ledger.AddAccount(domain.Account{ID: "acc-1", Name: "IBKR", Currency: "USD"})
	ledger.AddSymbol("US0378331005", usTicker)

	report := &domain.BrokerReport{}
	for i := 0; i < trades; i++ {
		report.Trades = append(report.Trades, stockTrade(fmt.Sprintf("tx-%d", i), "US0378331005", "AAPL", 1+i%28))
	}
	if cash != "" {
		report.Cash = []domain.CashReportEntry{{
			Currency: "BASE_SUMMARY",
			Pools:    map[string]decimal.Decimal{domain.CashPoolEndingCash: dec(cash)},
		}}
	}

	f := &syncFixture{
		ledger:   ledger,
		broker:   &mocks.StaticBroker{Report: report},
		runs:     &recordingRuns{},
		locker:   usecase.NewLocalRunLocker(),
		observer: &countingObserver{},
	}

	resolver := usecase.NewOverrideTickerResolver(domain.TickerOverrides{}, ledger, newMapCache(), time.Hour, zerolog.Nop())
	f.uc = usecase.NewSyncUseCase(usecase.SyncDeps{
		Ledger:   ledger,
		Broker:   f.broker,
		Resolver: resolver,
		Locker:   f.locker,
		Runs:     f.runs,
		Observer: f.observer,
		IDGen:    &sequenceIDs{},
		Account:  usecase.AccountSettings{Name: "IBKR", Currency: "USD"},
		Logger:   zerolog.Nop(),
	})
	return f
}

func TestSyncUseCase_SecondRunIsNoop(t *testing.T) {
	f := newSyncFixture(t, 12, "2500")
	ctx := context.Background()

	run, err := f.uc.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SyncStatusSucceeded, run.Status)
	assert.Equal(t, 12, run.Imported)
	assert.Len(t, f.ledger.ImportCalls, 2)
	assert.True(t, run.CashUpdated)

	run, err = f.uc.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SyncStatusNothingToSync, run.Status)
	assert.Equal(t, 0, run.Diff)
	assert.Len(t, f.ledger.ImportCalls, 2, "second run must not import")
	assert.Len(t, f.ledger.Activities(), 12)

	assert.Equal(t, []string{"run-1", "run-2"}, f.runs.created)
	assert.Len(t, f.runs.updated, 2)
	assert.Len(t, f.observer.runs, 2)
}

func TestSyncUseCase_RestrictedViewAbortsBeforeWrites(t *testing.T) {
	f := newSyncFixture(t, 3, "100")
	f.ledger.SetRestricted(true)

	run, err := f.uc.Run(context.Background())

	if !errors.Is(err, domain.ErrRestrictedView) {
		t.Fatalf("expected ErrRestrictedView, got %v", err)
	}
	if run.Status != domain.SyncStatusFailed {
		t.Fatalf("expected failed run, got %s", run.Status)
	}
	if f.broker.Calls != 0 || len(f.ledger.ImportCalls) != 0 || len(f.ledger.UpdateCalls) != 0 {
		t.Fatalf("expected no work, got broker=%d imports=%d updates=%d", f.broker.Calls, len(f.ledger.ImportCalls), len(f.ledger.UpdateCalls))
	}
}

func TestSyncUseCase_BatchFailureHaltsPipeline(t *testing.T) {
	f := newSyncFixture(t, 25, "100")
	rejected := errors.New("status 400: invalid activity")
	f.ledger.ImportActivitiesFunc = func(context.Context, []domain.Activity) error {
		if len(f.ledger.ImportCalls) == 2 {
			return rejected
		}
		return nil
	}

	run, err := f.uc.Run(context.Background())

	if !errors.Is(err, domain.ErrImportFailed) || !errors.Is(err, rejected) {
		t.Fatalf("expected import failure, got %v", err)
	}
	if len(f.ledger.ImportCalls) != 2 {
		t.Fatalf("expected chunk 3 never submitted, got %d submissions", len(f.ledger.ImportCalls))
	}
	if len(f.ledger.Activities()) != 10 {
		t.Fatalf("expected the first chunk to stay applied, got %d activities", len(f.ledger.Activities()))
	}
	if len(f.ledger.UpdateCalls) != 0 {
		t.Fatal("expected cash not to be reconciled after a failed import")
	}
	if run.Status != domain.SyncStatusFailed || run.Imported != 10 || run.Error == "" {
		t.Fatalf("unexpected run %+v", run)
	}
}

func TestSyncUseCase_ConcurrentRunRejected(t *testing.T) {
	f := newSyncFixture(t, 1, "")
	ok, err := f.locker.TryLock(context.Background(), "sync:IBKR", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = f.uc.Run(context.Background())

	assert.ErrorIs(t, err, domain.ErrSyncInProgress)
	assert.Equal(t, 0, f.broker.Calls)
}

func TestSyncUseCase_ReleasesLockAfterRun(t *testing.T) {
	f := newSyncFixture(t, 1, "")

	_, err := f.uc.Run(context.Background())
	require.NoError(t, err)

	ok, err := f.locker.TryLock(context.Background(), "sync:IBKR", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "expected lock to be released")
}

func TestSyncUseCase_SnapshotFailureWritesNothing(t *testing.T) {
	f := newSyncFixture(t, 3, "100")
	f.ledger.ListActivitiesFunc = func(context.Context, string) ([]domain.Activity, error) {
		return nil, errors.New("connection reset")
	}

	_, err := f.uc.Run(context.Background())

	assert.Error(t, err)
	assert.Empty(t, f.ledger.ImportCalls)
	assert.Empty(t, f.ledger.UpdateCalls)
}

func TestSyncUseCase_UnresolvableTickerWritesNothing(t *testing.T) {
	f := newSyncFixture(t, 2, "100")
	f.broker.Report.Trades[1].ISIN = "XX0000000000"
	f.broker.Report.Trades[1].Symbol = "UNKNOWN"

	run, err := f.uc.Run(context.Background())

	assert.ErrorIs(t, err, domain.ErrTickerNotFound)
	assert.Equal(t, domain.SyncStatusFailed, run.Status)
	assert.Empty(t, f.ledger.ImportCalls)
	assert.Empty(t, f.ledger.UpdateCalls)
}

func TestSyncUseCase_ZeroCashSkipsBalanceUpdate(t *testing.T) {
	f := newSyncFixture(t, 1, "0")

	run, err := f.uc.Run(context.Background())

	require.NoError(t, err)
	assert.False(t, run.CashUpdated)
	assert.Empty(t, f.ledger.UpdateCalls)
}

func TestSyncUseCase_CreatesMissingAccount(t *testing.T) {
	ledger := mocks.NewFakeLedger()
	ledger.AddSymbol("US0378331005", usTicker)
	ledger.AddPlatform("Interactive Brokers", "platform-1")

	uc := usecase.NewSyncUseCase(usecase.SyncDeps{
		Ledger:   ledger,
		Broker:   &mocks.StaticBroker{Report: &domain.BrokerReport{Trades: []domain.BrokerTrade{stockTrade("1", "US0378331005", "AAPL", 1)}}},
		Resolver: usecase.NewOverrideTickerResolver(nil, ledger, nil, 0, zerolog.Nop()),
		IDGen:    &sequenceIDs{},
		Account:  usecase.AccountSettings{Name: "IBKR", Currency: "USD", PlatformName: "Interactive Brokers"},
		Logger:   zerolog.Nop(),
	})

	run, err := uc.Run(context.Background())
	require.NoError(t, err)

	accounts := ledger.Accounts()
	require.Len(t, accounts, 1)
	assert.Equal(t, "platform-1", accounts[0].PlatformID)
	assert.Equal(t, accounts[0].ID, run.AccountID)
	assert.Equal(t, accounts[0].ID, ledger.Activities()[0].AccountID)
}
