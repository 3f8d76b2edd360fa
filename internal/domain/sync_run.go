package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SyncStatus is the outcome of a sync run.
type SyncStatus string

const (
	SyncStatusRunning       SyncStatus = "running"
	SyncStatusSucceeded     SyncStatus = "succeeded"
	SyncStatusNothingToSync SyncStatus = "nothing_to_sync"
	SyncStatusFailed        SyncStatus = "failed"
)

// SyncRun records one invocation of the sync pipeline.
type SyncRun struct {
	ID          string
	AccountID   string
	Status      SyncStatus
	Normalized  int
	Diff        int
	Imported    int
	Skipped     map[AssetCategory]int
	CashBalance decimal.Decimal
	CashUpdated bool
	Error       string
	StartedAt   time.Time
	FinishedAt  time.Time
}

// Finish stamps the run with its final status.
func (r *SyncRun) Finish(status SyncStatus, err error, at time.Time) {
	r.Status = status
	r.FinishedAt = at
	if err != nil {
		r.Error = err.Error()
	}
}

// Duration is the wall time of a finished run.
func (r *SyncRun) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
