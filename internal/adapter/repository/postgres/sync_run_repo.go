package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/ledgersync/internal/domain"
	"github.com/iho/ledgersync/internal/infrastructure/postgres/generated"
)

// SyncRunRepository implements usecase.RunRepository.
type SyncRunRepository struct {
	queries *generated.Queries
	retrier *Retrier
}

// NewSyncRunRepository creates a new SyncRunRepository.
func NewSyncRunRepository(pool *pgxpool.Pool, logger zerolog.Logger) *SyncRunRepository {
	return newSyncRunRepository(pool, NewRetrier(logger))
}

func newSyncRunRepository(db generated.DBTX, retrier *Retrier) *SyncRunRepository {
	return &SyncRunRepository{
		queries: generated.New(db),
		retrier: retrier,
	}
}

// Create records the start of a run.
func (r *SyncRunRepository) Create(ctx context.Context, run *domain.SyncRun) error {
	return r.retrier.Retry(ctx, "create sync run", func() error {
		return r.queries.CreateSyncRun(ctx, generated.CreateSyncRunParams{
			ID:        run.ID,
			AccountID: run.AccountID,
			Status:    string(run.Status),
			StartedAt: timeToPgTimestamptz(run.StartedAt),
		})
	})
}

// Update stores the outcome of a run.
func (r *SyncRunRepository) Update(ctx context.Context, run *domain.SyncRun) error {
	skipped, err := json.Marshal(run.Skipped)
	if err != nil {
		return fmt.Errorf("encode skipped categories: %w", err)
	}
	if run.Skipped == nil {
		skipped = []byte("{}")
	}

	return r.retrier.Retry(ctx, "update sync run", func() error {
		return r.queries.UpdateSyncRun(ctx, generated.UpdateSyncRunParams{
			ID:          run.ID,
			AccountID:   run.AccountID,
			Status:      string(run.Status),
			Normalized:  int32(run.Normalized),
			Diff:        int32(run.Diff),
			Imported:    int32(run.Imported),
			Skipped:     skipped,
			CashBalance: decimalToNumeric(run.CashBalance),
			CashUpdated: run.CashUpdated,
			Error:       run.Error,
			FinishedAt:  optionalTimestamptz(run.FinishedAt),
		})
	})
}

// ListRecent returns the latest runs, newest first.
func (r *SyncRunRepository) ListRecent(ctx context.Context, limit int) ([]*domain.SyncRun, error) {
	rows, err := r.queries.ListRecentSyncRuns(ctx, int32(limit))
	if err != nil {
		return nil, err
	}

	runs := make([]*domain.SyncRun, 0, len(rows))
	for _, row := range rows {
		run, err := rowToSyncRun(row)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

func rowToSyncRun(row generated.SyncRun) (*domain.SyncRun, error) {
	run := &domain.SyncRun{
		ID:          row.ID,
		AccountID:   row.AccountID,
		Status:      domain.SyncStatus(row.Status),
		Normalized:  int(row.Normalized),
		Diff:        int(row.Diff),
		Imported:    int(row.Imported),
		CashBalance: numericToDecimal(row.CashBalance),
		CashUpdated: row.CashUpdated,
		Error:       row.Error,
		StartedAt:   row.StartedAt.Time,
	}
	if row.FinishedAt.Valid {
		run.FinishedAt = row.FinishedAt.Time
	}
	if len(row.Skipped) > 0 {
		if err := json.Unmarshal(row.Skipped, &run.Skipped); err != nil {
			return nil, fmt.Errorf("decode skipped categories of run %s: %w", row.ID, err)
		}
	}
	return run, nil
}

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func optionalTimestamptz(t time.Time) pgtype.Timestamptz {
	if t.IsZero() {
		return pgtype.Timestamptz{}
	}
	return timeToPgTimestamptz(t)
}
