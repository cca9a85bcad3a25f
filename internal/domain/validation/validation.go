// Package validation holds the pure input checks shared by the CRM mutations.
// None of these functions perform I/O; callers turn a false result into a
// typed domain error.
package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	validate = validator.New()

	// +<country><subscriber> or NNN-NNN-NNNN
	phonePattern = regexp.MustCompile(`^(\+\d{1,3}\d{4,14}|\d{3}-\d{3}-\d{4})$`)
)

// ValidEmail reports whether s is a syntactically valid email address
func ValidEmail(s string) bool {
	if s == "" {
		return false
	}
	return validate.Var(s, "email") == nil
}

// ValidPhone reports whether s matches one of the accepted phone formats
func ValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// ValidPrice reports whether p is strictly positive
func ValidPrice(p decimal.Decimal) bool {
	return p.IsPositive()
}

// ValidStock reports whether n is a usable stock level
func ValidStock(n int) bool {
	return n >= 0
}
