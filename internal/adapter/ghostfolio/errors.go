package ghostfolio

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized     = errors.New("ghostfolio token rejected, renew GHOST_TOKEN")
	ErrPlatformNotFound = errors.New("platform not found")
)

// APIError is an unexpected response from the ledger service.
type APIError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
	Payload    string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
	if e.Payload != "" {
		msg += " (payload: " + e.Payload + ")"
	}
	return msg
}

func (e *APIError) Unwrap() error {
	if e.StatusCode == 401 {
		return ErrUnauthorized
	}
	return nil
}
