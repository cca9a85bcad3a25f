package trade

import (
	"time"

	"github.com/crm/backend/internal/domain/catalog"
	"github.com/crm/backend/internal/domain/partner"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order messages returned to API callers verbatim
const (
	MsgInvalidCustomer   = "Invalid customer ID"
	MsgNoValidProducts   = "No valid products found"
	MsgInvalidProductIDs = "Some product IDs are invalid"
	MsgOrderCreate       = "Order created successfully"
)

var (
	ErrInvalidCustomer   = shared.NewNotFoundError("INVALID_CUSTOMER", MsgInvalidCustomer)
	ErrNoValidProducts   = shared.NewValidationError("NO_VALID_PRODUCTS", MsgNoValidProducts)
	ErrInvalidProductIDs = shared.NewValidationError("INVALID_PRODUCT_IDS", MsgInvalidProductIDs)
)

// Order is an immutable purchase record. TotalAmount is a snapshot of the
// product prices at creation and is never recomputed.
type Order struct {
	shared.BaseEntity
	CustomerID  uuid.UUID
	Customer    *partner.Customer
	Products    []catalog.Product
	TotalAmount decimal.Decimal
	OrderDate   time.Time
}

// NewOrder builds an order for customer over products placed at orderDate
func NewOrder(customer *partner.Customer, products []catalog.Product, orderDate time.Time) (*Order, error) {
	if customer == nil {
		return nil, ErrInvalidCustomer
	}
	if len(products) == 0 {
		return nil, ErrNoValidProducts
	}

	lines := make([]catalog.Product, len(products))
	copy(lines, products)

	return &Order{
		BaseEntity:  shared.NewBaseEntity(),
		CustomerID:  customer.ID,
		Customer:    customer,
		Products:    lines,
		TotalAmount: SumPrices(lines),
		OrderDate:   orderDate,
	}, nil
}

// ProductIDs returns the ids of the products attached to the order
func (o *Order) ProductIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(o.Products))
	for i := range o.Products {
		ids[i] = o.Products[i].ID
	}
	return ids
}

// SumPrices adds up the current prices of products
func SumPrices(products []catalog.Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Price)
	}
	return total.Round(2)
}
