package catalog

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/domain/validation"
	"github.com/shopspring/decimal"
)

const maxProductNameLength = 255

// maxPrice is the largest value a decimal(10,2) column holds
var maxPrice = decimal.RequireFromString("99999999.99")

// Product messages returned to API callers verbatim
const (
	MsgPriceNotPositive = "Price must be positive"
	MsgNegativeStock    = "Stock cannot be negative"
	MsgProductCreate    = "Product created successfully"
)

// Product is a sellable item. Its stock is only ever changed by replenishment.
type Product struct {
	shared.BaseEntity
	Name  string
	Price decimal.Decimal
	Stock int
}

// NewProduct creates a new product. Price is rounded to cents before the
// positivity check so it matches the stored decimal(10,2) column.
func NewProduct(name string, price decimal.Decimal, stock int) (*Product, error) {
	price = price.Round(2)
	if !validation.ValidPrice(price) {
		return nil, shared.NewValidationError("INVALID_PRICE", MsgPriceNotPositive)
	}
	if price.GreaterThan(maxPrice) {
		return nil, shared.NewValidationError("INVALID_PRICE", "Price cannot exceed 99999999.99")
	}
	if !validation.ValidStock(stock) {
		return nil, shared.NewValidationError("INVALID_STOCK", MsgNegativeStock)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("INVALID_NAME", "Product name is required")
	}
	if utf8.RuneCountInString(name) > maxProductNameLength {
		return nil, shared.NewValidationError("INVALID_NAME", "Product name cannot exceed 255 characters")
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Price:      price,
		Stock:      stock,
	}, nil
}

// Restock adds increment units to the product's stock
func (p *Product) Restock(increment int) error {
	if !validation.ValidStock(p.Stock + increment) {
		return shared.NewValidationError("INVALID_STOCK", MsgNegativeStock)
	}
	p.Stock += increment
	p.UpdatedAt = time.Now()
	return nil
}

// IsLowStock reports whether the product is below the given threshold
func (p *Product) IsLowStock(threshold int) bool {
	return p.Stock < threshold
}
