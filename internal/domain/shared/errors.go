package shared

import "errors"

// ErrorKind classifies a DomainError so callers can tell rejected input apart
// from an infrastructure failure.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindConflict   ErrorKind = "conflict"
	KindNotFound   ErrorKind = "not_found"
	KindDatastore  ErrorKind = "datastore"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Kind    ErrorKind `json:"kind"`
	cause   error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause, if any
func (e *DomainError) Unwrap() error {
	return e.cause
}

// Is reports whether target is a DomainError with the same code.
// It lets errors.Is match the sentinel errors below.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError creates a new validation-kind domain error
func NewDomainError(code, message string) *DomainError {
	return NewValidationError(code, message)
}

// NewValidationError creates an error for malformed or out-of-range input
func NewValidationError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message, Kind: KindValidation}
}

// NewConflictError creates an error for a uniqueness violation
func NewConflictError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message, Kind: KindConflict}
}

// NewNotFoundError creates an error for a missing referenced entity
func NewNotFoundError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message, Kind: KindNotFound}
}

// NewDatastoreError wraps an infrastructure failure
func NewDatastoreError(message string, cause error) *DomainError {
	return &DomainError{Code: "DATASTORE_ERROR", Message: message, Kind: KindDatastore, cause: cause}
}

// WithCode returns a copy of the error carrying a different code
func (e *DomainError) WithCode(code string) *DomainError {
	cp := *e
	cp.Code = code
	return &cp
}

// AsDomainError extracts a DomainError from err
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// IsDatastore reports whether err is (or wraps) an infrastructure failure.
// Errors that are not DomainErrors are treated as infrastructure failures.
func IsDatastore(err error) bool {
	if err == nil {
		return false
	}
	de, ok := AsDomainError(err)
	return !ok || de.Kind == KindDatastore
}

// Common domain errors
var (
	ErrNotFound      = NewNotFoundError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists = NewConflictError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput  = NewValidationError("INVALID_INPUT", "Invalid input provided")
)
