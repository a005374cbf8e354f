package dto

import (
	"net/http"

	"github.com/shopsync/backend/internal/domain/shared"
)

// Transport-level error codes with no domain counterpart.
const (
	ErrCodeBadRequest  = "BAD_REQUEST"
	ErrCodeRateLimited = "RATE_LIMITED"
	ErrCodeTooLarge    = "REQUEST_TOO_LARGE"
	ErrCodeInternal    = shared.CodeInternal
)

// ErrorCodeHTTPStatus maps domain and transport error codes to HTTP statuses.
// Upstream failures map to 502 so clients can distinguish a retryable remote
// outage from a local bug.
var ErrorCodeHTTPStatus = map[string]int{
	shared.CodeValidation:    http.StatusBadRequest,
	shared.CodeNotFound:      http.StatusNotFound,
	shared.CodeConflict:      http.StatusConflict,
	shared.CodeUpstream:      http.StatusBadGateway,
	shared.CodeConfiguration: http.StatusInternalServerError,
	shared.CodeInternal:      http.StatusInternalServerError,

	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeRateLimited: http.StatusTooManyRequests,
	ErrCodeTooLarge:    http.StatusRequestEntityTooLarge,
}

// GetHTTPStatus returns the HTTP status for an error code, defaulting to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
