package crm

import (
	"context"

	"github.com/crm/backend/internal/domain/catalog"
	"github.com/crm/backend/internal/domain/partner"
	"github.com/crm/backend/internal/domain/trade"
)

// TransactionScope defines an interface for executing operations within a transaction.
// Every top-level mutation runs inside exactly one Execute call.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the CRM repositories within a
// transaction. All repositories returned share the same underlying transaction.
type TransactionalRepositories interface {
	Customers() partner.CustomerRepository
	Products() catalog.ProductRepository
	Orders() trade.OrderRepository

	// Nested runs fn inside a savepoint of the current transaction. An error
	// from fn rolls back only the savepoint; the outer transaction stays usable.
	Nested(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// NoOpTransactionScope is a transaction scope that doesn't actually use transactions.
// This is useful for testing or when transaction support is not required.
type NoOpTransactionScope struct {
	customers partner.CustomerRepository
	products  catalog.ProductRepository
	orders    trade.OrderRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	customers partner.CustomerRepository,
	products catalog.ProductRepository,
	orders trade.OrderRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{customers: customers, products: products, orders: orders}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Nested runs the function without a savepoint.
func (s *NoOpTransactionScope) Nested(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) Customers() partner.CustomerRepository { return s.customers }
func (s *NoOpTransactionScope) Products() catalog.ProductRepository { return s.products }
func (s *NoOpTransactionScope) Orders() trade.OrderRepository { return s.orders }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
