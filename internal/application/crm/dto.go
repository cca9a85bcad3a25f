package crm

import (
	"time"

	"github.com/crm/backend/internal/domain/catalog"
	"github.com/crm/backend/internal/domain/partner"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CreateCustomerInput carries the fields of a new customer. A nil or blank
// Phone means no phone.
type CreateCustomerInput struct {
	Name  string
	Email string
	Phone *string
}

// CreateProductInput carries the fields of a new product. Stock defaults to 0.
type CreateProductInput struct {
	Name  string
	Price decimal.Decimal
	Stock *int
}

// CreateOrderInput references an existing customer and products by id.
// OrderDate defaults to the current time.
type CreateOrderInput struct {
	CustomerID string
	ProductIDs []string
	OrderDate  *time.Time
}

// BulkResult lists the customers created by a bulk import and one
// "Index {i}: {reason}" message per rejected input.
type BulkResult struct {
	Customers []partner.Customer
	Errors    []string
}

// ReplenishInput overrides the default threshold and increment
type ReplenishInput struct {
	Threshold *int
	Increment *int
}

// ReplenishResult reports the products a replenishment run touched
type ReplenishResult struct {
	Success   bool
	Message   string
	Threshold int
	Increment int
	Products  []catalog.Product
	Err       *shared.DomainError
}

// CRMSummary aggregates the figures used by the periodic report
type CRMSummary struct {
	TotalCustomers int64
	TotalOrders    int64
	TotalRevenue   decimal.Decimal
}
