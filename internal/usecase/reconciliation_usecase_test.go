package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/ledgersync/internal/domain"
	"github.com/iho/ledgersync/internal/usecase"
	"github.com/iho/ledgersync/internal/usecase/mocks"
)

func newReconciliation(ledger *mocks.FakeLedger, broker *mocks.StaticBroker) *usecase.ReconciliationUseCase {
	resolver := usecase.NewOverrideTickerResolver(nil, ledger, nil, time.Hour, zerolog.Nop())
	return usecase.NewReconciliationUseCase(ledger, broker, resolver, "IBKR", zerolog.Nop())
}

func TestGenerateReconciliationReport(t *testing.T) {
	t.Parallel()

	ledger := mocks.NewFakeLedger()
	ledger.AddAccount(domain.Account{ID: "acc-1", Name: "IBKR", Balance: decimal.NewFromInt(150)})
	ledger.AddSymbol("US0378331005", usTicker)
	ledger.AddActivity(activity("tx-1", "2024-03-02T00:00:00.000Z", "AAPL"))
	ledger.AddActivity(activity("old", "2023-03-02T00:00:00.000Z", "MSFT"))

	broker := &mocks.StaticBroker{Report: &domain.BrokerReport{
		Trades: []domain.BrokerTrade{
			stockTrade("tx-1", "US0378331005", "AAPL", 2),
			stockTrade("tx-2", "US0378331005", "AAPL", 3),
		},
		Cash: []domain.CashReportEntry{{Pools: map[string]decimal.Decimal{domain.CashPoolEndingCash: decimal.NewFromInt(150)}}},
	}}

	report, err := newReconciliation(ledger, broker).GenerateReconciliationReport(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !report.AccountExists || report.AccountID != "acc-1" {
		t.Fatalf("expected existing account, got %+v", report)
	}
	if report.Existing != 2 || report.Normalized != 2 {
		t.Fatalf("unexpected counts existing=%d normalized=%d", report.Existing, report.Normalized)
	}
	if len(report.Pending) != 1 || report.Pending[0].Comment != domain.TransactionTag("tx-2") {
		t.Fatalf("expected tx-2 pending, got %v", report.Pending)
	}
	if report.LedgerOnly != 1 {
		t.Fatalf("expected one ledger-only activity, got %d", report.LedgerOnly)
	}
	if report.InSync() {
		t.Fatal("expected report not to be in sync")
	}
	if report.CheckedAt.IsZero() {
		t.Fatal("expected CheckedAt timestamp")
	}
	if len(ledger.ImportCalls) != 0 || len(ledger.UpdateCalls) != 0 {
		t.Fatal("expected report generation to be read-only")
	}
}

func TestGenerateReconciliationReport_MissingAccount(t *testing.T) {
	t.Parallel()

	ledger := mocks.NewFakeLedger()
	ledger.AddSymbol("US0378331005", usTicker)
	broker := &mocks.StaticBroker{Report: &domain.BrokerReport{
		Trades: []domain.BrokerTrade{stockTrade("tx-1", "US0378331005", "AAPL", 2)},
	}}

	report, err := newReconciliation(ledger, broker).GenerateReconciliationReport(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.AccountExists || len(report.Pending) != 1 {
		t.Fatalf("expected everything pending for a missing account, got %+v", report)
	}
	if len(ledger.Accounts()) != 0 {
		t.Fatal("expected no account to be created")
	}
}

func TestGenerateReconciliationReport_PropagatesBrokerError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	_, err := newReconciliation(mocks.NewFakeLedger(), &mocks.StaticBroker{Err: boom}).GenerateReconciliationReport(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected propagated error, got %v", err)
	}
}
