package graphql

import (
	"context"
	"errors"
	"time"

	"github.com/crm/backend/internal/application/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/logger"
	"github.com/graphql-go/graphql"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Resolver binds the schema fields to the CRM services
type Resolver struct {
	mutations   *crm.MutationService
	importer    *crm.BulkImporter
	query       *crm.QueryService
	replenisher *crm.ReplenishmentEngine
	logger      *zap.Logger
}

// NewResolver creates a new Resolver
func NewResolver(
	mutations *crm.MutationService,
	importer *crm.BulkImporter,
	query *crm.QueryService,
	replenisher *crm.ReplenishmentEngine,
	log *zap.Logger,
) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{
		mutations:   mutations,
		importer:    importer,
		query:       query,
		replenisher: replenisher,
		logger:      log,
	}
}

// fail logs err and returns the message clients may see
func (r *Resolver) fail(ctx context.Context, field string, err error) error {
	logger.Enrich(ctx, r.logger).Error("GraphQL resolver failed",
		zap.String("field", field),
		zap.Error(err),
	)
	if de, ok := shared.AsDomainError(err); ok {
		return errors.New(de.Message)
	}
	return errors.New("internal error")
}

func (r *Resolver) hello(graphql.ResolveParams) (any, error) {
	return r.query.Hello(), nil
}

func (r *Resolver) customers(p graphql.ResolveParams) (any, error) {
	customers, err := r.query.Customers(p.Context)
	if err != nil {
		return nil, r.fail(p.Context, "customers", err)
	}
	return customerValues(customers), nil
}

func (r *Resolver) products(p graphql.ResolveParams) (any, error) {
	products, err := r.query.Products(p.Context)
	if err != nil {
		return nil, r.fail(p.Context, "products", err)
	}
	return productValues(products), nil
}

func (r *Resolver) orders(p graphql.ResolveParams) (any, error) {
	orders, err := r.query.Orders(p.Context)
	if err != nil {
		return nil, r.fail(p.Context, "orders", err)
	}
	return orderValues(orders), nil
}

// summaryField resolves one of the CRM totals
func (r *Resolver) summaryField(field string, pick func(crm.CRMSummary) any) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		summary, err := r.query.Summary(p.Context)
		if err != nil {
			return nil, r.fail(p.Context, field, err)
		}
		return pick(summary), nil
	}
}

func (r *Resolver) createCustomer(p graphql.ResolveParams) (any, error) {
	res, err := r.mutations.CreateCustomer(p.Context, customerInput(p.Args["input"]))
	if err != nil {
		return nil, r.fail(p.Context, "createCustomer", err)
	}
	return map[string]any{
		"customer": customerValue(res.Entity),
		"success":  res.Success,
		"message":  res.Message,
	}, nil
}

func (r *Resolver) bulkCreateCustomers(p graphql.ResolveParams) (any, error) {
	raw, _ := p.Args["input"].([]any)
	inputs := make([]crm.CreateCustomerInput, len(raw))
	for i, item := range raw {
		inputs[i] = customerInput(item)
	}

	res, err := r.importer.BulkCreateCustomers(p.Context, inputs)
	if err != nil {
		return nil, r.fail(p.Context, "bulkCreateCustomers", err)
	}

	errs := make([]any, len(res.Errors))
	for i, e := range res.Errors {
		errs[i] = e
	}
	return map[string]any{
		"customers": customerValues(res.Customers),
		"errors":    errs,
	}, nil
}

func (r *Resolver) createProduct(p graphql.ResolveParams) (any, error) {
	res, err := r.mutations.CreateProduct(p.Context, productInput(p.Args["input"]))
	if err != nil {
		return nil, r.fail(p.Context, "createProduct", err)
	}
	return map[string]any{
		"product": productValue(res.Entity),
		"success": res.Success,
		"message": res.Message,
	}, nil
}

func (r *Resolver) createOrder(p graphql.ResolveParams) (any, error) {
	res, err := r.mutations.CreateOrder(p.Context, orderInput(p.Args["input"]))
	if err != nil {
		return nil, r.fail(p.Context, "createOrder", err)
	}
	return map[string]any{
		"order":   orderValue(res.Entity),
		"success": res.Success,
		"message": res.Message,
	}, nil
}

func (r *Resolver) updateLowStockProducts(p graphql.ResolveParams) (any, error) {
	in := crm.ReplenishInput{
		Threshold: intArg(p.Args, "threshold"),
		Increment: intArg(p.Args, "increment"),
	}
	res, err := r.replenisher.Replenish(p.Context, in)
	if err != nil {
		return nil, r.fail(p.Context, "updateLowStockProducts", err)
	}
	return map[string]any{
		"success":         res.Success,
		"message":         res.Message,
		"updatedProducts": productValues(res.Products),
	}, nil
}

func customerInput(raw any) crm.CreateCustomerInput {
	m, _ := raw.(map[string]any)
	in := crm.CreateCustomerInput{
		Name:  stringField(m, "name"),
		Email: stringField(m, "email"),
	}
	if phone, ok := m["phone"].(string); ok {
		in.Phone = &phone
	}
	return in
}

func productInput(raw any) crm.CreateProductInput {
	m, _ := raw.(map[string]any)
	in := crm.CreateProductInput{Name: stringField(m, "name")}
	if price, ok := m["price"].(decimal.Decimal); ok {
		in.Price = price
	}
	in.Stock = intArg(m, "stock")
	return in
}

func orderInput(raw any) crm.CreateOrderInput {
	m, _ := raw.(map[string]any)
	in := crm.CreateOrderInput{CustomerID: stringField(m, "customerId")}

	ids, _ := m["productIds"].([]any)
	in.ProductIDs = make([]string, 0, len(ids))
	// null entries stay in the list as blanks so they count as invalid ids
	for _, id := range ids {
		s, _ := id.(string)
		in.ProductIDs = append(in.ProductIDs, s)
	}

	switch d := m["orderDate"].(type) {
	case time.Time:
		in.OrderDate = &d
	case *time.Time:
		in.OrderDate = d
	}
	return in
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func intArg(m map[string]any, key string) *int {
	if v, ok := m[key].(int); ok {
		return &v
	}
	return nil
}
