package dto

import (
	"time"

	"github.com/crm/backend/internal/application/crm"
	"github.com/crm/backend/internal/domain/catalog"
	"github.com/crm/backend/internal/domain/partner"
	"github.com/crm/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest is the body of POST /customers
type CreateCustomerRequest struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone"`
}

// ToInput converts the request to the service input
func (r CreateCustomerRequest) ToInput() crm.CreateCustomerInput {
	return crm.CreateCustomerInput{Name: r.Name, Email: r.Email, Phone: r.Phone}
}

// BulkCreateCustomersRequest is the body of POST /customers/bulk
type BulkCreateCustomersRequest struct {
	Customers []CreateCustomerRequest `json:"customers"`
}

// ToInputs converts every item, preserving order
func (r BulkCreateCustomersRequest) ToInputs() []crm.CreateCustomerInput {
	inputs := make([]crm.CreateCustomerInput, len(r.Customers))
	for i, c := range r.Customers {
		inputs[i] = c.ToInput()
	}
	return inputs
}

// CreateProductRequest is the body of POST /products.
// Price accepts a JSON number or a decimal string.
type CreateProductRequest struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock *int            `json:"stock"`
}

// ToInput converts the request to the service input
func (r CreateProductRequest) ToInput() crm.CreateProductInput {
	return crm.CreateProductInput{Name: r.Name, Price: r.Price, Stock: r.Stock}
}

// CreateOrderRequest is the body of POST /orders. OrderDate is RFC 3339.
type CreateOrderRequest struct {
	CustomerID string     `json:"customer_id"`
	ProductIDs []string   `json:"product_ids"`
	OrderDate  *time.Time `json:"order_date"`
}

// ToInput converts the request to the service input
func (r CreateOrderRequest) ToInput() crm.CreateOrderInput {
	return crm.CreateOrderInput{CustomerID: r.CustomerID, ProductIDs: r.ProductIDs, OrderDate: r.OrderDate}
}

// ReplenishRequest is the optional body of POST /inventory/replenish
type ReplenishRequest struct {
	Threshold *int `json:"threshold"`
	Increment *int `json:"increment"`
}

// ToInput converts the request to the service input
func (r ReplenishRequest) ToInput() crm.ReplenishInput {
	return crm.ReplenishInput{Threshold: r.Threshold, Increment: r.Increment}
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

// OrderResponse represents an order with its customer and products
type OrderResponse struct {
	ID          string            `json:"id"`
	Customer    *CustomerResponse `json:"customer,omitempty"`
	Products    []ProductResponse `json:"products"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	OrderDate   time.Time         `json:"order_date"`
}

// BulkCreateCustomersResponse lists created customers and per-item errors
type BulkCreateCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	Errors    []string           `json:"errors"`
}

// ReplenishResponse reports a replenishment run
type ReplenishResponse struct {
	Threshold       int               `json:"threshold"`
	Increment       int               `json:"increment"`
	UpdatedProducts []ProductResponse `json:"updated_products"`
}

// SummaryResponse carries the CRM totals
type SummaryResponse struct {
	TotalCustomers int64           `json:"total_customers"`
	TotalOrders    int64           `json:"total_orders"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
}

// ToCustomerResponse converts a domain customer
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
	}
}

// ToCustomerResponses converts a slice of customers
func ToCustomerResponses(customers []partner.Customer) []CustomerResponse {
	out := make([]CustomerResponse, len(customers))
	for i := range customers {
		out[i] = ToCustomerResponse(&customers[i])
	}
	return out
}

// ToProductResponse converts a domain product
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:    p.ID.String(),
		Name:  p.Name,
		Price: p.Price,
		Stock: p.Stock,
	}
}

// ToProductResponses converts a slice of products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i])
	}
	return out
}

// ToOrderResponse converts a domain order
func ToOrderResponse(o *trade.Order) OrderResponse {
	resp := OrderResponse{
		ID:          o.ID.String(),
		Products:    ToProductResponses(o.Products),
		TotalAmount: o.TotalAmount,
		OrderDate:   o.OrderDate,
	}
	if o.Customer != nil {
		customer := ToCustomerResponse(o.Customer)
		resp.Customer = &customer
	}
	return resp
}

// ToOrderResponses converts a slice of orders
func ToOrderResponses(orders []trade.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i := range orders {
		out[i] = ToOrderResponse(&orders[i])
	}
	return out
}

// ToBulkResponse converts a bulk import result
func ToBulkResponse(r crm.BulkResult) BulkCreateCustomersResponse {
	errs := r.Errors
	if errs == nil {
		errs = []string{}
	}
	return BulkCreateCustomersResponse{
		Customers: ToCustomerResponses(r.Customers),
		Errors:    errs,
	}
}

// ToReplenishResponse converts a replenishment result
func ToReplenishResponse(r crm.ReplenishResult) ReplenishResponse {
	return ReplenishResponse{
		Threshold:       r.Threshold,
		Increment:       r.Increment,
		UpdatedProducts: ToProductResponses(r.Products),
	}
}

// ToSummaryResponse converts the CRM totals
func ToSummaryResponse(s crm.CRMSummary) SummaryResponse {
	return SummaryResponse{
		TotalCustomers: s.TotalCustomers,
		TotalOrders:    s.TotalOrders,
		TotalRevenue:   s.TotalRevenue,
	}
}
