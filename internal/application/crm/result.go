package crm

import (
	"errors"

	"github.com/crm/backend/internal/domain/shared"
)

// Result is the outcome of a single mutation. A failed Result carries the
// rejected input's reason in Err; infrastructure failures are never encoded
// here and come back as the service call's error instead.
type Result[T any] struct {
	Success bool
	Message string
	Entity  *T
	Err     *shared.DomainError
}

// Succeeded builds the success variant
func Succeeded[T any](entity *T, message string) Result[T] {
	return Result[T]{Success: true, Message: message, Entity: entity}
}

// Failed builds the failure variant
func Failed[T any](err *shared.DomainError) Result[T] {
	return Result[T]{Success: false, Message: err.Message, Err: err}
}

// recoverable returns the domain error carried by err when it describes a
// rejected input rather than an infrastructure failure.
func recoverable(err error) (*shared.DomainError, bool) {
	de, ok := shared.AsDomainError(err)
	if !ok || de.Kind == shared.KindDatastore {
		return nil, false
	}
	return de, true
}

// settle converts the error returned by a transaction into a Result or a
// propagated failure.
func settle[T any](entity *T, message string, err error) (Result[T], error) {
	if err == nil {
		return Succeeded(entity, message), nil
	}
	if de, ok := recoverable(err); ok {
		return Failed[T](de), nil
	}
	return Result[T]{}, asDatastoreError(err)
}

// asDatastoreError makes sure infrastructure failures leave the application
// layer as datastore-kind domain errors.
func asDatastoreError(err error) error {
	var de *shared.DomainError
	if errors.As(err, &de) && de.Kind == shared.KindDatastore {
		return err
	}
	return shared.NewDatastoreError("datastore operation failed", err)
}
