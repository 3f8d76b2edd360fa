package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/iho/ledgersync/internal/domain"
	"github.com/iho/ledgersync/internal/usecase"
	"github.com/iho/ledgersync/internal/usecase/mocks"
)

func TestCashReconciler_UpdatesWithSummedPools(t *testing.T) {
	ctrl := gomock.NewController(t)
	updater := mocks.NewMockAccountUpdater(ctrl)

	account := domain.Account{ID: "acc-1", Name: "IBKR", Currency: "EUR", PlatformID: "p-1"}
	updater.EXPECT().UpdateAccount(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, got domain.Account) error {
			if !got.Balance.Equal(dec("1500.75")) {
				t.Fatalf("expected balance 1500.75, got %s", got.Balance)
			}
			if got.ID != "acc-1" || got.PlatformID != "p-1" || got.AccountType != domain.AccountTypeSecurities {
				t.Fatalf("expected account metadata to be kept, got %+v", got)
			}
			return nil
		})

	entries := []domain.CashReportEntry{{
		Currency: "BASE_SUMMARY",
		Pools: map[string]decimal.Decimal{
			domain.CashPoolEndingCash:      dec("1000.5"),
			domain.CashPoolEndingCashPaxos: dec("500.25"),
		},
	}}

	result, err := usecase.NewCashReconciler(updater, zerolog.Nop()).Reconcile(context.Background(), account, entries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Updated || !result.Total.Equal(dec("1500.75")) {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestCashReconciler_ZeroTotalNeverUpdates(t *testing.T) {
	tests := []struct {
		name    string
		entries []domain.CashReportEntry
	}{
		{name: "no cash report", entries: nil},
		{name: "pools missing", entries: []domain.CashReportEntry{{Currency: "BASE_SUMMARY"}}},
		{name: "pools cancel out", entries: []domain.CashReportEntry{{Pools: map[string]decimal.Decimal{
			domain.CashPoolEndingCash:      dec("12.5"),
			domain.CashPoolEndingCashPaxos: dec("-12.5"),
		}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			updater := mocks.NewMockAccountUpdater(ctrl)
			// no EXPECT: any UpdateAccount call fails the test

			result, err := usecase.NewCashReconciler(updater, zerolog.Nop()).Reconcile(context.Background(), domain.Account{ID: "acc-1"}, tt.entries)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Updated {
				t.Fatal("expected no update for zero cash")
			}
		})
	}
}

func TestCashReconciler_PropagatesUpdateError(t *testing.T) {
	ctrl := gomock.NewController(t)
	updater := mocks.NewMockAccountUpdater(ctrl)
	updater.EXPECT().UpdateAccount(gomock.Any(), gomock.Any()).Return(errors.New("status 500"))

	entries := []domain.CashReportEntry{{Pools: map[string]decimal.Decimal{domain.CashPoolEndingCash: dec("1")}}}
	_, err := usecase.NewCashReconciler(updater, zerolog.Nop()).Reconcile(context.Background(), domain.Account{ID: "acc-1"}, entries)
	if err == nil {
		t.Fatal("expected error")
	}
}
