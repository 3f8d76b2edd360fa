package dto

import "errors"

// RestrictedViewRequest toggles the ledger's restricted view.
type RestrictedViewRequest struct {
	Enabled *bool `json:"enabled"`
}

// Validate reports a missing enabled flag.
func (r *RestrictedViewRequest) Validate() error {
	if r.Enabled == nil {
		return errors.New("enabled is required")
	}
	return nil
}

// PaginationRequest represents pagination parameters.
type PaginationRequest struct {
	Limit int `json:"limit"`
}
