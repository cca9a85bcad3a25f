package crm

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/crm/backend/internal/domain/catalog"
	"github.com/crm/backend/internal/domain/partner"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MutationService creates customers, products and orders. Each call runs in
// a single unit of work and reports rejected input as a failed Result.
type MutationService struct {
	scope   TransactionScope
	logger  *zap.Logger
	metrics Metrics
	now     func() time.Time
}

// MutationOption configures a MutationService
type MutationOption func(*MutationService)

// WithLogger sets the service logger
func WithLogger(logger *zap.Logger) MutationOption {
	return func(s *MutationService) {
		s.logger = logger
	}
}

// WithMetrics sets the business metrics recorder
func WithMetrics(m Metrics) MutationOption {
	return func(s *MutationService) {
		s.metrics = m
	}
}

// WithClock overrides the time source used for default order dates
func WithClock(now func() time.Time) MutationOption {
	return func(s *MutationService) {
		s.now = now
	}
}

// NewMutationService creates a new MutationService
func NewMutationService(scope TransactionScope, opts ...MutationOption) *MutationService {
	s := &MutationService{
		scope:   scope,
		logger:  zap.NewNop(),
		metrics: noopMetrics{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateCustomer validates and stores a new customer.
// Checks run in order: email format, email uniqueness, phone format.
func (s *MutationService) CreateCustomer(ctx context.Context, in CreateCustomerInput) (Result[partner.Customer], error) {
	var customer *partner.Customer
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		customer, err = createCustomer(ctx, repos.Customers(), in)
		return err
	})

	res, err := settle(customer, partner.MsgCustomerCreate, err)
	if err != nil {
		s.logger.Error("Failed to create customer", zap.String("email", in.Email), zap.Error(err))
		return res, err
	}
	if res.Success {
		s.metrics.RecordCustomerCreated(ctx)
		s.logger.Info("Customer created", zap.String("customer_id", customer.ID.String()))
	} else {
		s.logger.Debug("Customer rejected", zap.String("code", res.Err.Code))
	}
	return res, nil
}

// CreateProduct validates and stores a new product
func (s *MutationService) CreateProduct(ctx context.Context, in CreateProductInput) (Result[catalog.Product], error) {
	stock := 0
	if in.Stock != nil {
		stock = *in.Stock
	}

	var product *catalog.Product
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		p, err := catalog.NewProduct(in.Name, in.Price, stock)
		if err != nil {
			return err
		}
		if err := repos.Products().Save(ctx, p); err != nil {
			return err
		}
		product = p
		return nil
	})

	res, err := settle(product, catalog.MsgProductCreate, err)
	if err != nil {
		s.logger.Error("Failed to create product", zap.String("name", in.Name), zap.Error(err))
		return res, err
	}
	if res.Success {
		s.metrics.RecordProductCreated(ctx)
	}
	return res, nil
}

// CreateOrder places an order for an existing customer. Any unknown product
// id fails the whole order; no partial product sets are stored.
func (s *MutationService) CreateOrder(ctx context.Context, in CreateOrderInput) (Result[trade.Order], error) {
	var order *trade.Order
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		customer, err := resolveCustomer(ctx, repos.Customers(), in.CustomerID)
		if err != nil {
			return err
		}

		products, err := resolveProducts(ctx, repos.Products(), in.ProductIDs)
		if err != nil {
			return err
		}

		orderDate := s.now()
		if in.OrderDate != nil {
			orderDate = *in.OrderDate
		}

		o, err := trade.NewOrder(customer, products, orderDate)
		if err != nil {
			return err
		}
		if err := repos.Orders().Save(ctx, o); err != nil {
			return err
		}
		order = o
		return nil
	})

	res, err := settle(order, trade.MsgOrderCreate, err)
	if err != nil {
		s.logger.Error("Failed to create order", zap.String("customer_id", in.CustomerID), zap.Error(err))
		return res, err
	}
	if res.Success {
		s.metrics.RecordOrderCreated(ctx, order.TotalAmount)
		s.logger.Info("Order created",
			zap.String("order_id", order.ID.String()),
			zap.String("total_amount", order.TotalAmount.StringFixed(2)),
		)
	}
	return res, nil
}

// createCustomer holds the customer rules shared by single and bulk creation
func createCustomer(ctx context.Context, repo partner.CustomerRepository, in CreateCustomerInput) (*partner.Customer, error) {
	email := strings.TrimSpace(in.Email)
	if err := partner.ValidateEmail(email); err != nil {
		return nil, err
	}

	exists, err := repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, partner.ErrEmailExists
	}

	customer, err := partner.NewCustomer(in.Name, email, in.Phone)
	if err != nil {
		return nil, err
	}

	if err := repo.Save(ctx, customer); err != nil {
		// Lost a race with a concurrent insert of the same email
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, partner.ErrEmailExists
		}
		return nil, err
	}
	return customer, nil
}

func resolveCustomer(ctx context.Context, repo partner.CustomerRepository, rawID string) (*partner.Customer, error) {
	id, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		return nil, trade.ErrInvalidCustomer
	}
	customer, err := repo.FindByID(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, trade.ErrInvalidCustomer
	}
	if err != nil {
		return nil, err
	}
	return customer, nil
}

func resolveProducts(ctx context.Context, repo catalog.ProductRepository, rawIDs []string) ([]catalog.Product, error) {
	ids, _ := shared.ParseIDs(rawIDs)

	var products []catalog.Product
	if len(ids) > 0 {
		found, err := repo.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		products = found
	}

	if len(products) == 0 {
		return nil, trade.ErrNoValidProducts
	}
	// Unparsable, unknown and repeated ids all make the counts differ
	if len(products) != len(rawIDs) {
		return nil, trade.ErrInvalidProductIDs
	}
	return products, nil
}
