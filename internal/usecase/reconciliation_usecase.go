package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/ledgersync/internal/domain"
)

// ReconciliationUseCase compares the broker export with the ledger without writing anything.
type ReconciliationUseCase struct {
	ledger      LedgerClient
	broker      BrokerClient
	normalizer  *Normalizer
	cash        *CashReconciler
	accountName string
}

// NewReconciliationUseCase creates a new reconciliation use case
func NewReconciliationUseCase(
	ledger LedgerClient,
	broker BrokerClient,
	resolver TickerResolver,
	accountName string,
	logger zerolog.Logger,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		ledger:      ledger,
		broker:      broker,
		normalizer:  NewNormalizer(resolver, logger),
		cash:        NewCashReconciler(ledger, logger),
		accountName: accountName,
	}
}

// ReconciliationReport is what a sync would do right now.
type ReconciliationReport struct {
	AccountID     string
	AccountExists bool
	Existing      int
	Normalized    int
	Pending       []domain.Activity
	LedgerOnly    int
	Skipped       map[domain.AssetCategory]int
	RecordedCash  decimal.Decimal
	BrokerCash    decimal.Decimal
	CheckedAt     time.Time
}

// InSync reports whether a sync would neither import activities nor touch the balance.
func (r *ReconciliationReport) InSync() bool {
	return len(r.Pending) == 0 && (r.BrokerCash.IsZero() || r.BrokerCash.Equal(r.RecordedCash))
}

// GenerateReconciliationReport builds the report for the configured sync account.
// A missing account is reported, not created.
func (uc *ReconciliationUseCase) GenerateReconciliationReport(ctx context.Context) (*ReconciliationReport, error) {
	report := &ReconciliationReport{CheckedAt: time.Now().UTC()}

	accounts, err := uc.ledger.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list accounts: %w", domain.ErrAccountUnavailable, err)
	}
	for _, acc := range accounts {
		if acc.Name == uc.accountName {
			report.AccountID = acc.ID
			report.AccountExists = true
			report.RecordedCash = acc.Balance
			break
		}
	}

	brokerReport, err := uc.broker.FetchReport(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch broker report: %w", err)
	}

	accountID := report.AccountID
	if !report.AccountExists {
		// The sync would create the account; its name stands in for the id.
		accountID = uc.accountName
	}

	normalized, err := uc.normalizer.Normalize(ctx, accountID, brokerReport.Trades)
	if err != nil {
		return nil, fmt.Errorf("normalize trades: %w", err)
	}
	report.Normalized = len(normalized.Activities)
	report.Skipped = normalized.Skipped

	var existing []domain.Activity
	if report.AccountExists {
		existing, err = uc.ledger.ListActivities(ctx, report.AccountID)
		if err != nil {
			return nil, fmt.Errorf("fetch existing activities: %w", err)
		}
	}
	report.Existing = len(existing)
	report.Pending = Diff(existing, normalized.Activities)
	report.LedgerOnly = len(Diff(normalized.Activities, existing))
	report.BrokerCash = uc.cash.SumCash(brokerReport.Cash)

	return report, nil
}
