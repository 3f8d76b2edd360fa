package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/iho/ledgersync/internal/adapter/http/dto"
	"github.com/iho/ledgersync/internal/domain"
	"github.com/iho/ledgersync/internal/usecase"
)

const defaultRunsLimit = 20

// SyncService defines the behavior needed to trigger and list runs.
type SyncService interface {
	Run(ctx context.Context) (*domain.SyncRun, error)
	RecentRuns(ctx context.Context, limit int) ([]*domain.SyncRun, error)
}

// PlanService builds a dry-run report of the next sync.
type PlanService interface {
	GenerateReconciliationReport(ctx context.Context) (*usecase.ReconciliationReport, error)
}

// SyncHandler handles sync-related HTTP requests.
type SyncHandler struct {
	syncUC SyncService
	planUC PlanService
	view   usecase.ViewSettings
	logger zerolog.Logger
}

// NewSyncHandler creates a new SyncHandler.
func NewSyncHandler(syncUC SyncService, planUC PlanService, view usecase.ViewSettings, logger zerolog.Logger) *SyncHandler {
	return &SyncHandler{
		syncUC: syncUC,
		planUC: planUC,
		view:   view,
		logger: logger,
	}
}

// Trigger runs one sync and returns its record.
// A failed run still carries its record in the response body.
func (h *SyncHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	run, err := h.syncUC.Run(r.Context())
	if err != nil {
		status := mapDomainError(err)
		h.logger.Warn().Err(err).Int("status", status).Msg("sync run failed")
		if run == nil {
			writeError(w, status, "sync failed", err.Error())
			return
		}
		writeJSON(w, status, dto.SyncRunFromDomain(run))
		return
	}

	writeJSON(w, http.StatusOK, dto.SyncRunFromDomain(run))
}

// ListRuns lists recent runs, newest first.
func (h *SyncHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", defaultRunsLimit)

	runs, err := h.syncUC.RecentRuns(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list runs", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListRunsResponse{
		Runs:  dto.SyncRunsFromDomain(runs),
		Total: len(runs),
	})
}

// Plan reports what a sync would import without writing to the ledger.
func (h *SyncHandler) Plan(w http.ResponseWriter, r *http.Request) {
	report, err := h.planUC.GenerateReconciliationReport(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build plan", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PlanFromReport(report))
}

// GetRestrictedView reports the ledger's restricted view state.
func (h *SyncHandler) GetRestrictedView(w http.ResponseWriter, r *http.Request) {
	enabled, err := h.view.IsRestrictedView(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to read restricted view", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RestrictedViewResponse{Enabled: enabled})
}

// SetRestrictedView toggles the ledger's restricted view.
func (h *SyncHandler) SetRestrictedView(w http.ResponseWriter, r *http.Request) {
	var req dto.RestrictedViewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.view.SetRestrictedView(r.Context(), *req.Enabled); err != nil {
		writeError(w, http.StatusBadGateway, "failed to update restricted view", err.Error())
		return
	}

	h.logger.Info().Bool("enabled", *req.Enabled).Msg("restricted view updated")
	writeJSON(w, http.StatusOK, dto.RestrictedViewResponse{Enabled: *req.Enabled})
}
