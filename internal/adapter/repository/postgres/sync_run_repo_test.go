package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"

	"github.com/iho/ledgersync/internal/domain"
)

func TestSyncRunRepository_Create(t *testing.T) {
	pool := newMockPool(t)
	repo := newSyncRunRepository(pool, fastRetrier())
	started := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	pool.ExpectExec("INSERT INTO sync_runs").
		WithArgs("run-1", "", "running", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), &domain.SyncRun{ID: "run-1", Status: domain.SyncStatusRunning, StartedAt: started})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertExpectations(t, pool)
}

func TestSyncRunRepository_UpdateRetriesDeadlock(t *testing.T) {
	pool := newMockPool(t)
	repo := newSyncRunRepository(pool, fastRetrier())

	run := &domain.SyncRun{
		ID:          "run-1",
		AccountID:   "acc-1",
		Status:      domain.SyncStatusSucceeded,
		Normalized:  12,
		Diff:        3,
		Imported:    3,
		Skipped:     map[domain.AssetCategory]int{domain.AssetCategoryOption: 2},
		CashBalance: decimal.RequireFromString("100.5"),
		CashUpdated: true,
		FinishedAt:  time.Now(),
	}

	args := []any{"run-1", "acc-1", "succeeded", int32(12), int32(3), int32(3),
		[]byte(`{"OPT":2}`), pgxmock.AnyArg(), true, "", pgxmock.AnyArg()}

	pool.ExpectExec("UPDATE sync_runs").WithArgs(args...).
		WillReturnError(&pgconn.PgError{Code: pgErrDeadlock})
	pool.ExpectExec("UPDATE sync_runs").WithArgs(args...).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	if err := repo.Update(context.Background(), run); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertExpectations(t, pool)
}

func TestSyncRunRepository_UpdatePropagatesError(t *testing.T) {
	pool := newMockPool(t)
	repo := newSyncRunRepository(pool, fastRetrier())
	boom := errors.New("connection refused")

	pool.ExpectExec("UPDATE sync_runs").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(boom)

	err := repo.Update(context.Background(), &domain.SyncRun{ID: "run-1", Status: domain.SyncStatusFailed})
	if !errors.Is(err, boom) {
		t.Fatalf("expected propagated error, got %v", err)
	}
	assertExpectations(t, pool)
}

func TestSyncRunRepository_ListRecent(t *testing.T) {
	pool := newMockPool(t)
	repo := newSyncRunRepository(pool, fastRetrier())
	started := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	columns := []string{"id", "account_id", "status", "normalized", "diff", "imported", "skipped",
		"cash_balance", "cash_updated", "error", "started_at", "finished_at"}
	pool.ExpectQuery("FROM sync_runs").
		WithArgs(int32(5)).
		WillReturnRows(pgxmock.NewRows(columns).
			AddRow("run-2", "acc-1", "nothing_to_sync", int32(12), int32(0), int32(0), []byte(`{}`),
				"250.75", true, "", started.Add(time.Hour), started.Add(time.Hour+time.Second)).
			AddRow("run-1", "acc-1", "failed", int32(0), int32(0), int32(0), []byte(`{"OPT":3}`),
				"0", false, "boom", started, nil))

	runs, err := repo.ListRecent(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}

	if runs[0].Status != domain.SyncStatusNothingToSync || !runs[0].CashBalance.Equal(decimal.RequireFromString("250.75")) {
		t.Fatalf("unexpected first run %+v", runs[0])
	}
	if runs[0].Duration() != time.Second {
		t.Fatalf("expected 1s duration, got %s", runs[0].Duration())
	}
	if runs[1].Skipped[domain.AssetCategoryOption] != 3 || runs[1].Error != "boom" || !runs[1].FinishedAt.IsZero() {
		t.Fatalf("unexpected second run %+v", runs[1])
	}
	assertExpectations(t, pool)
}

func TestNumericRoundTrip(t *testing.T) {
	for _, s := range []string{"0", "1234.5678", "-0.01", "99999999.12345678"} {
		d := decimal.RequireFromString(s)
		if got := numericToDecimal(decimalToNumeric(d)); !got.Equal(d) {
			t.Fatalf("expected %s, got %s", d, got)
		}
	}
}
