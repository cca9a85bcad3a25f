package persistence

import (
	"errors"
	"strings"

	"github.com/crm/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// isUniqueViolation reports whether err is a unique-constraint failure.
// Dialectors with TranslateError report gorm.ErrDuplicatedKey; the string
// checks cover drivers that gorm cannot translate.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

// datastoreError wraps a raw driver error as a datastore-kind DomainError.
// Errors that already are DomainErrors pass through untouched.
func datastoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := shared.AsDomainError(err); ok {
		return err
	}
	return shared.NewDatastoreError(op, err)
}
