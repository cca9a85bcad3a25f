package partner

import (
	"context"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	shared.Lister[Customer]

	// FindByID finds a customer by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByEmail finds a customer by exact email
	FindByEmail(ctx context.Context, email string) (*Customer, error)

	// ExistsByEmail checks whether the email is taken
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Save inserts a new customer. A unique email violation is reported as
	// shared.ErrAlreadyExists.
	Save(ctx context.Context, customer *Customer) error

	// Count counts all customers
	Count(ctx context.Context) (int64, error)
}
