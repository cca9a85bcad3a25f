package dto

import (
	"net/http"

	"github.com/crm/backend/internal/domain/shared"
)

// Transport level error codes. Domain failures keep the code of the
// DomainError (EMAIL_EXISTS, INVALID_PRICE, ...).
const (
	ErrCodeInternal           = "ERR_INTERNAL"
	ErrCodeBadRequest         = "ERR_BAD_REQUEST"
	ErrCodeInvalidJSON        = "ERR_INVALID_JSON"
	ErrCodeRequestTooLarge    = "REQUEST_TOO_LARGE"
	ErrCodeServiceUnavailable = "ERR_SERVICE_UNAVAILABLE"
)

// kindHTTPStatus maps error kinds to HTTP status codes
var kindHTTPStatus = map[shared.ErrorKind]int{
	shared.KindValidation: http.StatusBadRequest,
	shared.KindConflict:   http.StatusConflict,
	shared.KindNotFound:   http.StatusNotFound,
	shared.KindDatastore:  http.StatusInternalServerError,
}

// codeHTTPStatus overrides the kind mapping for specific codes
var codeHTTPStatus = map[string]int{
	"REPLENISH_BUSY": http.StatusServiceUnavailable,
}

// StatusForKind returns the HTTP status for an error kind.
// Unknown kinds are treated as server errors.
func StatusForKind(kind shared.ErrorKind) int {
	if status, ok := kindHTTPStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// StatusForError returns the HTTP status for a domain error
func StatusForError(err *shared.DomainError) int {
	if err == nil {
		return http.StatusInternalServerError
	}
	if status, ok := codeHTTPStatus[err.Code]; ok {
		return status
	}
	return StatusForKind(err.Kind)
}
