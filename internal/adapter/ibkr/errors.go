package ibkr

import "fmt"

// Flex Web Service error codes worth retrying.
const (
	codeServerBusy        = "1009"
	codeTooManyRequests   = "1018"
	codeGenerationPending = "1019"
)

// FlexError is a failure reported inside a FlexStatementResponse.
type FlexError struct {
	URL     string
	Code    string
	Message string
}

func (e *FlexError) Error() string {
	return fmt.Sprintf("flex %s: error %s: %s", e.URL, e.Code, e.Message)
}

// Retryable reports whether the statement may become available later.
func (e *FlexError) Retryable() bool {
	switch e.Code {
	case codeServerBusy, codeTooManyRequests, codeGenerationPending:
		return true
	}
	return false
}
