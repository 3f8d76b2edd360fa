package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/ledgersync/internal/domain"
)

// SyncDeps wires the collaborators of a SyncUseCase.
type SyncDeps struct {
	Ledger   LedgerClient
	Broker   BrokerClient
	Resolver TickerResolver
	Locker   RunLocker
	Runs     RunRepository
	Dumper   DebugDumper
	Observer RunObserver
	IDGen    IDGenerator
	Account  AccountSettings
	LockTTL  time.Duration
	Logger   zerolog.Logger
}

// SyncUseCase runs the broker-to-ledger sync pipeline.
type SyncUseCase struct {
	ledger    LedgerClient
	broker    BrokerClient
	bootstrap *AccountBootstrapper
	normalize *Normalizer
	importer  *BulkImporter
	cash      *CashReconciler
	locker    RunLocker
	runs      RunRepository
	dumper    DebugDumper
	observer  RunObserver
	idGen     IDGenerator
	lockName  string
	lockTTL   time.Duration
	logger    zerolog.Logger
}

// NewSyncUseCase creates a new SyncUseCase.
func NewSyncUseCase(deps SyncDeps) *SyncUseCase {
	lockTTL := deps.LockTTL
	if lockTTL <= 0 {
		lockTTL = DefaultRunLockTTL
	}

	locker := deps.Locker
	if locker == nil {
		locker = NewLocalRunLocker()
	}

	runs := deps.Runs
	if runs == nil {
		runs = discardRunRepository{}
	}

	return &SyncUseCase{
		ledger:    deps.Ledger,
		broker:    deps.Broker,
		bootstrap: NewAccountBootstrapper(deps.Ledger, deps.Account, deps.Logger),
		normalize: NewNormalizer(deps.Resolver, deps.Logger),
		importer:  NewBulkImporter(deps.Ledger, deps.Logger),
		cash:      NewCashReconciler(deps.Ledger, deps.Logger),
		locker:    locker,
		runs:      runs,
		dumper:    deps.Dumper,
		observer:  deps.Observer,
		idGen:     deps.IDGen,
		lockName:  "sync:" + deps.Account.Name,
		lockTTL:   lockTTL,
		logger:    deps.Logger,
	}
}

// Run executes one sync: gate on the restricted view, fetch the broker export,
// normalize, diff against the ledger, import the diff and update the cash balance.
// The returned run is populated even when err is non-nil.
func (uc *SyncUseCase) Run(ctx context.Context) (*domain.SyncRun, error) {
	run := &domain.SyncRun{
		ID:        uc.idGen.Generate(),
		Status:    domain.SyncStatusRunning,
		StartedAt: time.Now().UTC(),
	}
	logger := uc.logger.With().Str("run_id", run.ID).Logger()

	if err := uc.runs.Create(ctx, run); err != nil {
		logger.Warn().Err(err).Msg("failed to record run start")
	}

	restricted, err := uc.ledger.IsRestrictedView(ctx)
	if err != nil {
		return uc.finish(ctx, run, fmt.Errorf("read ledger view settings: %w", err))
	}
	if restricted {
		logger.Warn().Msg("restricted view active, not syncing")
		return uc.finish(ctx, run, fmt.Errorf("%w: deactivate it before syncing", domain.ErrRestrictedView))
	}

	acquired, err := uc.locker.TryLock(ctx, uc.lockName, uc.lockTTL)
	if err != nil {
		return uc.finish(ctx, run, fmt.Errorf("acquire run lock: %w", err))
	}
	if !acquired {
		return uc.finish(ctx, run, domain.ErrSyncInProgress)
	}
	defer func() {
		// The run context may already be cancelled; the lock must still go.
		if err := uc.locker.Unlock(context.WithoutCancel(ctx), uc.lockName); err != nil {
			logger.Warn().Err(err).Msg("failed to release run lock")
		}
	}()

	account, err := uc.bootstrap.Ensure(ctx)
	if err != nil {
		return uc.finish(ctx, run, err)
	}
	run.AccountID = account.ID
	logger = logger.With().Str("account_id", account.ID).Logger()

	report, err := uc.broker.FetchReport(ctx)
	if err != nil {
		return uc.finish(ctx, run, fmt.Errorf("fetch broker report: %w", err))
	}

	normalized, err := uc.normalize.Normalize(ctx, account.ID, report.Trades)
	if err != nil {
		return uc.finish(ctx, run, fmt.Errorf("normalize trades: %w", err))
	}
	run.Normalized = len(normalized.Activities)
	run.Skipped = normalized.Skipped

	existing, err := uc.ledger.ListActivities(ctx, account.ID)
	if err != nil {
		// An empty snapshot would re-import every trade.
		return uc.finish(ctx, run, fmt.Errorf("fetch existing activities: %w", err))
	}

	diff := Diff(existing, normalized.Activities)
	run.Diff = len(diff)
	logger.Info().
		Int("existing", len(existing)).
		Int("normalized", len(normalized.Activities)).
		Int("diff", len(diff)).
		Msg("computed activity diff")

	if uc.dumper != nil {
		if err := uc.dumper.Dump(ctx, existing, normalized.Activities, diff); err != nil {
			logger.Warn().Err(err).Msg("failed to write debug files")
		}
	}

	if len(diff) == 0 {
		logger.Info().Msg("nothing new to sync")
	} else {
		result, err := uc.importer.Import(ctx, diff)
		run.Imported = result.Imported
		if err != nil {
			return uc.finish(ctx, run, err)
		}
	}

	cash, err := uc.cash.Reconcile(ctx, account, report.Cash)
	if err != nil {
		return uc.finish(ctx, run, err)
	}
	run.CashBalance = cash.Total
	run.CashUpdated = cash.Updated

	return uc.finish(ctx, run, nil)
}

// RecentRuns lists the latest recorded runs.
func (uc *SyncUseCase) RecentRuns(ctx context.Context, limit int) ([]*domain.SyncRun, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return uc.runs.ListRecent(ctx, limit)
}

func (uc *SyncUseCase) finish(ctx context.Context, run *domain.SyncRun, err error) (*domain.SyncRun, error) {
	status := domain.SyncStatusSucceeded
	switch {
	case err != nil:
		status = domain.SyncStatusFailed
	case run.Diff == 0:
		status = domain.SyncStatusNothingToSync
	}
	run.Finish(status, err, time.Now().UTC())

	event := uc.logger.Info()
	if err != nil {
		event = uc.logger.Error().Err(err)
	}
	event.Str("run_id", run.ID).
		Str("status", string(run.Status)).
		Int("imported", run.Imported).
		Dur("duration", run.Duration()).
		Msg("sync run finished")

	if uerr := uc.runs.Update(context.WithoutCancel(ctx), run); uerr != nil {
		uc.logger.Warn().Err(uerr).Str("run_id", run.ID).Msg("failed to record run result")
	}

	if uc.observer != nil {
		uc.observer.ObserveRun(run)
	}

	return run, err
}
