package trade

import (
	"context"
	"time"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderRepository defines the interface for order persistence.
// FindAll and FindPlacedBetween return orders with Customer and Products loaded.
type OrderRepository interface {
	shared.Lister[Order]

	// Save inserts the order and its product associations
	Save(ctx context.Context, order *Order) error

	// FindPlacedBetween returns orders whose OrderDate falls in [from, to]
	FindPlacedBetween(ctx context.Context, from, to time.Time) ([]Order, error)

	// Count counts all orders
	Count(ctx context.Context) (int64, error)

	// SumTotalAmount returns the sum of all order totals
	SumTotalAmount(ctx context.Context) (decimal.Decimal, error)
}
