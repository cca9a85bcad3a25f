package catalog

import (
	"context"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	shared.Lister[Product]

	// FindByIDs returns the products that exist among ids. Unknown ids are
	// silently skipped; callers compare lengths.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// FindBelowStock returns products with stock < threshold. Inside a
	// transaction the rows are locked for update where the driver supports it.
	FindBelowStock(ctx context.Context, threshold int) ([]Product, error)

	// Save inserts a new product
	Save(ctx context.Context, product *Product) error

	// UpdateStock overwrites the stock of a single product
	UpdateStock(ctx context.Context, id uuid.UUID, stock int) error
}
