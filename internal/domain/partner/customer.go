package partner

import (
	"strings"
	"unicode/utf8"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/domain/validation"
)

const (
	maxNameLength  = 255
	maxEmailLength = 254
	maxPhoneLength = 20
)

// Customer messages returned to API callers verbatim
const (
	MsgInvalidEmail   = "Invalid email format"
	MsgEmailExists    = "Email already exists"
	MsgInvalidPhone   = "Invalid phone format"
	MsgNameRequired   = "Name is required"
	MsgNameTooLong    = "Name cannot exceed 255 characters"
	MsgCustomerCreate = "Customer created successfully"
)

// ErrEmailExists is returned whenever a customer email collides with an
// existing record, whether detected up front or by the unique index.
var ErrEmailExists = shared.NewConflictError("EMAIL_EXISTS", MsgEmailExists)

// Customer is a CRM contact. Customers are created once and never updated by
// the core.
type Customer struct {
	shared.BaseEntity
	Name  string
	Email string
	Phone *string
}

// NewCustomer validates the fields of a new customer. Email format is checked
// before phone format; uniqueness is the caller's job because it needs the
// repository.
func NewCustomer(name, email string, phone *string) (*Customer, error) {
	email = strings.TrimSpace(email)
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	phone = normalizePhone(phone)
	if err := ValidatePhone(phone); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}

	return &Customer{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Email:      email,
		Phone:      phone,
	}, nil
}

// ValidateEmail checks the email syntax only
func ValidateEmail(email string) error {
	if len(email) > maxEmailLength || !validation.ValidEmail(email) {
		return shared.NewValidationError("INVALID_EMAIL", MsgInvalidEmail)
	}
	return nil
}

// ValidatePhone checks an optional phone number. nil means no phone.
func ValidatePhone(phone *string) error {
	if phone == nil {
		return nil
	}
	if len(*phone) > maxPhoneLength || !validation.ValidPhone(*phone) {
		return shared.NewValidationError("INVALID_PHONE", MsgInvalidPhone)
	}
	return nil
}

// PhoneOrEmpty returns the phone number or "" when absent
func (c *Customer) PhoneOrEmpty() string {
	if c.Phone == nil {
		return ""
	}
	return *c.Phone
}

func validateName(name string) error {
	if name == "" {
		return shared.NewValidationError("INVALID_NAME", MsgNameRequired)
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return shared.NewValidationError("INVALID_NAME", MsgNameTooLong)
	}
	return nil
}

// normalizePhone treats a blank phone as absent
func normalizePhone(phone *string) *string {
	if phone == nil {
		return nil
	}
	p := strings.TrimSpace(*phone)
	if p == "" {
		return nil
	}
	return &p
}
