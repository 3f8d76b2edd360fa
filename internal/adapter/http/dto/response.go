package dto

import (
	"time"

	"github.com/iho/ledgersync/internal/domain"
	"github.com/iho/ledgersync/internal/usecase"
)

// SyncRunResponse represents a sync run in API responses.
type SyncRunResponse struct {
	ID          string         `json:"id"`
	AccountID   string         `json:"account_id,omitempty"`
	Status      string         `json:"status"`
	Normalized  int            `json:"normalized"`
	Diff        int            `json:"diff"`
	Imported    int            `json:"imported"`
	Skipped     map[string]int `json:"skipped,omitempty"`
	CashBalance string         `json:"cash_balance"`
	CashUpdated bool           `json:"cash_updated"`
	Error       string         `json:"error,omitempty"`
	StartedAt   time.Time      `json:"started_at"`
	FinishedAt  *time.Time     `json:"finished_at,omitempty"`
	DurationMs  int64          `json:"duration_ms"`
}

// SyncRunFromDomain converts a domain run to response.
func SyncRunFromDomain(r *domain.SyncRun) *SyncRunResponse {
	resp := &SyncRunResponse{
		ID:          r.ID,
		AccountID:   r.AccountID,
		Status:      string(r.Status),
		Normalized:  r.Normalized,
		Diff:        r.Diff,
		Imported:    r.Imported,
		Skipped:     skippedFromDomain(r.Skipped),
		CashBalance: r.CashBalance.String(),
		CashUpdated: r.CashUpdated,
		Error:       r.Error,
		StartedAt:   r.StartedAt,
		DurationMs:  r.Duration().Milliseconds(),
	}
	if !r.FinishedAt.IsZero() {
		finished := r.FinishedAt
		resp.FinishedAt = &finished
	}
	return resp
}

// SyncRunsFromDomain converts domain runs to responses.
func SyncRunsFromDomain(runs []*domain.SyncRun) []*SyncRunResponse {
	result := make([]*SyncRunResponse, len(runs))
	for i, r := range runs {
		result[i] = SyncRunFromDomain(r)
	}
	return result
}

// ListRunsResponse represents a list of recent runs.
type ListRunsResponse struct {
	Runs  []*SyncRunResponse `json:"runs"`
	Total int                `json:"total"`
}

// ActivityResponse represents a pending activity in a plan.
type ActivityResponse struct {
	Date      string `json:"date"`
	Type      string `json:"type"`
	Symbol    string `json:"symbol"`
	Currency  string `json:"currency"`
	Quantity  string `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Fee       string `json:"fee"`
	Comment   string `json:"comment,omitempty"`
}

// ActivityFromDomain converts a domain activity to response.
func ActivityFromDomain(a domain.Activity) ActivityResponse {
	return ActivityResponse{
		Date:      a.Date,
		Type:      string(a.Type),
		Symbol:    a.ResolvedSymbol(),
		Currency:  a.Currency,
		Quantity:  a.Quantity.String(),
		UnitPrice: a.UnitPrice.String(),
		Fee:       a.Fee.String(),
		Comment:   a.Comment,
	}
}

// PlanResponse is a dry-run view of the next sync.
type PlanResponse struct {
	AccountID     string             `json:"account_id,omitempty"`
	AccountExists bool               `json:"account_exists"`
	Existing      int                `json:"existing"`
	Normalized    int                `json:"normalized"`
	LedgerOnly    int                `json:"ledger_only"`
	Pending       []ActivityResponse `json:"pending"`
	Skipped       map[string]int     `json:"skipped,omitempty"`
	RecordedCash  string             `json:"recorded_cash"`
	BrokerCash    string             `json:"broker_cash"`
	InSync        bool               `json:"in_sync"`
	CheckedAt     time.Time          `json:"checked_at"`
}

// PlanFromReport converts a reconciliation report to response.
func PlanFromReport(r *usecase.ReconciliationReport) *PlanResponse {
	pending := make([]ActivityResponse, len(r.Pending))
	for i, a := range r.Pending {
		pending[i] = ActivityFromDomain(a)
	}
	return &PlanResponse{
		AccountID:     r.AccountID,
		AccountExists: r.AccountExists,
		Existing:      r.Existing,
		Normalized:    r.Normalized,
		LedgerOnly:    r.LedgerOnly,
		Pending:       pending,
		Skipped:       skippedFromDomain(r.Skipped),
		RecordedCash:  r.RecordedCash.String(),
		BrokerCash:    r.BrokerCash.String(),
		InSync:        r.InSync(),
		CheckedAt:     r.CheckedAt,
	}
}

// RestrictedViewResponse reports the ledger's restricted view state.
type RestrictedViewResponse struct {
	Enabled bool `json:"enabled"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func skippedFromDomain(skipped map[domain.AssetCategory]int) map[string]int {
	if len(skipped) == 0 {
		return nil
	}
	out := make(map[string]int, len(skipped))
	for k, v := range skipped {
		out[string(k)] = v
	}
	return out
}
