package crm

import (
	"context"
	"time"

	"github.com/crm/backend/internal/domain/catalog"
	"github.com/crm/backend/internal/domain/partner"
	"github.com/crm/backend/internal/domain/trade"
)

const helloMessage = "Hello, GraphQL!"

// QueryService provides read-only listings of CRM entities
type QueryService struct {
	customers partner.CustomerRepository
	products  catalog.ProductRepository
	orders    trade.OrderRepository
	now       func() time.Time
}

// NewQueryService creates a new QueryService
func NewQueryService(
	customers partner.CustomerRepository,
	products catalog.ProductRepository,
	orders trade.OrderRepository,
) *QueryService {
	return &QueryService{
		customers: customers,
		products:  products,
		orders:    orders,
		now:       time.Now,
	}
}

// Hello returns the liveness greeting
func (s *QueryService) Hello() string {
	return helloMessage
}

// Customers lists all customers
func (s *QueryService) Customers(ctx context.Context) ([]partner.Customer, error) {
	return s.customers.FindAll(ctx)
}

// Products lists all products
func (s *QueryService) Products(ctx context.Context) ([]catalog.Product, error) {
	return s.products.FindAll(ctx)
}

// Orders lists all orders with their customer and products
func (s *QueryService) Orders(ctx context.Context) ([]trade.Order, error) {
	return s.orders.FindAll(ctx)
}

// RecentOrders lists orders placed within the last window
func (s *QueryService) RecentOrders(ctx context.Context, window time.Duration) ([]trade.Order, error) {
	now := s.now()
	return s.orders.FindPlacedBetween(ctx, now.Add(-window), now)
}

// Summary returns customer and order totals and the overall revenue
func (s *QueryService) Summary(ctx context.Context) (CRMSummary, error) {
	customers, err := s.customers.Count(ctx)
	if err != nil {
		return CRMSummary{}, err
	}
	orders, err := s.orders.Count(ctx)
	if err != nil {
		return CRMSummary{}, err
	}
	revenue, err := s.orders.SumTotalAmount(ctx)
	if err != nil {
		return CRMSummary{}, err
	}
	return CRMSummary{
		TotalCustomers: customers,
		TotalOrders:    orders,
		TotalRevenue:   revenue,
	}, nil
}
