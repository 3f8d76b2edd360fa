package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/iho/ledgersync/internal/adapter/http/dto"
	"github.com/iho/ledgersync/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrSyncInProgress):
		return http.StatusConflict
	case errors.Is(err, domain.ErrRestrictedView):
		return http.StatusConflict
	case errors.Is(err, domain.ErrTickerNotFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUnsupportedCurrencyPair):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUnknownSide):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrImportFailed):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrAccountUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrStatementNotReady):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil || i <= 0 {
		return defaultValue
	}
	return i
}
