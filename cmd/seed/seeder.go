package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/crm/backend/internal/application/crm"
	"github.com/crm/backend/internal/domain/catalog"
	"github.com/crm/backend/internal/domain/partner"
	"github.com/crm/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type customerSeed struct {
	name  string
	email string
	phone string
}

type productSeed struct {
	name  string
	price string
	stock int
}

var (
	seedCustomers = []customerSeed{
		{"Alice Johnson", "alice@example.com", "+1234567890"},
		{"Bob Smith", "bob@example.com", "123-456-7890"},
		{"Carol Davis", "carol@example.com", "+1987654321"},
		{"David Wilson", "david@example.com", ""},
		{"Eva Brown", "eva@example.com", "987-654-3210"},
	}

	seedProducts = []productSeed{
		{"Laptop", "999.99", 50},
		{"Wireless Mouse", "29.99", 100},
		{"Mechanical Keyboard", "79.99", 75},
		{"4K Monitor", "299.99", 30},
		{"Noise-Cancelling Headphones", "149.99", 60},
	}

	// customer index -> product indexes
	seedOrders = []struct {
		customer int
		products []int
	}{
		{0, []int{0, 1}},
		{1, []int{2, 3}},
		{2, []int{4}},
		{3, []int{0, 2, 4}},
		{4, []int{1, 3}},
	}
)

// Seeder loads the demo dataset through the mutation service so every row
// passes the same validation as API input.
type Seeder struct {
	db        *gorm.DB
	mutations *crm.MutationService
	faker     *gofakeit.Faker
	logger    *zap.Logger
}

// NewSeeder creates a seeder. seed fixes the fake data generator.
func NewSeeder(db *gorm.DB, mutations *crm.MutationService, seed uint64, logger *zap.Logger) *Seeder {
	return &Seeder{
		db:        db,
		mutations: mutations,
		faker:     gofakeit.New(seed),
		logger:    logger,
	}
}

// Reset deletes every CRM row, children first
func (s *Seeder) Reset(ctx context.Context) error {
	all := models.All()
	for i := len(all) - 1; i >= 0; i-- {
		if err := s.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(all[i]).Error; err != nil {
			return fmt.Errorf("failed to clear %T: %w", all[i], err)
		}
	}
	s.logger.Info("Cleared existing data")
	return nil
}

// Run resets the tables, inserts the fixed dataset and then extra fake
// customers.
func (s *Seeder) Run(ctx context.Context, extra int) error {
	if err := s.Reset(ctx); err != nil {
		return err
	}

	customers := make([]partner.Customer, 0, len(seedCustomers))
	for _, c := range seedCustomers {
		in := crm.CreateCustomerInput{Name: c.name, Email: c.email}
		if c.phone != "" {
			phone := c.phone
			in.Phone = &phone
		}
		created, err := s.createCustomer(ctx, in)
		if err != nil {
			return err
		}
		customers = append(customers, *created)
	}

	products := make([]catalog.Product, 0, len(seedProducts))
	for _, p := range seedProducts {
		stock := p.stock
		res, err := s.mutations.CreateProduct(ctx, crm.CreateProductInput{
			Name:  p.name,
			Price: decimal.RequireFromString(p.price),
			Stock: &stock,
		})
		if err != nil {
			return err
		}
		if !res.Success {
			return fmt.Errorf("product %q rejected: %s", p.name, res.Message)
		}
		s.logger.Info("Added product", zap.String("name", res.Entity.Name), zap.String("price", res.Entity.Price.StringFixed(2)))
		products = append(products, *res.Entity)
	}

	for _, o := range seedOrders {
		ids := make([]string, 0, len(o.products))
		names := make([]string, 0, len(o.products))
		for _, idx := range o.products {
			ids = append(ids, products[idx].ID.String())
			names = append(names, products[idx].Name)
		}
		res, err := s.mutations.CreateOrder(ctx, crm.CreateOrderInput{
			CustomerID: customers[o.customer].ID.String(),
			ProductIDs: ids,
		})
		if err != nil {
			return err
		}
		if !res.Success {
			return fmt.Errorf("order for %q rejected: %s", customers[o.customer].Name, res.Message)
		}
		s.logger.Info("Created order",
			zap.String("customer", customers[o.customer].Name),
			zap.String("products", strings.Join(names, ", ")),
			zap.String("total", res.Entity.TotalAmount.StringFixed(2)),
		)
	}

	for i := 0; i < extra; i++ {
		if _, err := s.createCustomer(ctx, s.fakeCustomer(i)); err != nil {
			return err
		}
	}
	return nil
}

// fakeCustomer generates a customer whose email cannot collide with the fixed
// dataset or another fake.
func (s *Seeder) fakeCustomer(i int) crm.CreateCustomerInput {
	phone := fmt.Sprintf("+1%010d", s.faker.Number(0, 999999999))
	return crm.CreateCustomerInput{
		Name:  s.faker.Name(),
		Email: fmt.Sprintf("%s.%d@seed.example.com", strings.ToLower(s.faker.Username()), i),
		Phone: &phone,
	}
}

func (s *Seeder) createCustomer(ctx context.Context, in crm.CreateCustomerInput) (*partner.Customer, error) {
	res, err := s.mutations.CreateCustomer(ctx, in)
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, fmt.Errorf("customer %q rejected: %s", in.Email, res.Message)
	}
	s.logger.Info("Added customer", zap.String("name", res.Entity.Name), zap.String("email", res.Entity.Email))
	return res.Entity, nil
}
