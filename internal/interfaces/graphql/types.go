package graphql

import (
	"github.com/crm/backend/internal/domain/catalog"
	"github.com/crm/backend/internal/domain/partner"
	"github.com/crm/backend/internal/domain/trade"
	"github.com/graphql-go/graphql"
)

var customerType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Customer",
	Fields: graphql.Fields{
		"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"name":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"email":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"phone":     &graphql.Field{Type: graphql.String},
		"createdAt": &graphql.Field{Type: graphql.DateTime},
	},
})

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":    &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"name":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"price": &graphql.Field{Type: graphql.NewNonNull(Decimal)},
		"stock": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
	},
})

var orderType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Order",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"customer":    &graphql.Field{Type: customerType},
		"products":    &graphql.Field{Type: graphql.NewList(productType)},
		"totalAmount": &graphql.Field{Type: graphql.NewNonNull(Decimal)},
		"orderDate":   &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
	},
})

var customerInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "CustomerInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"email": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"phone": &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var productInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ProductInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"price": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(Decimal)},
		"stock": &graphql.InputObjectFieldConfig{Type: graphql.Int},
	},
})

var orderInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "OrderInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"customerId": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
		"productIds": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.ID))},
		"orderDate":  &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
	},
})

var createCustomerPayload = graphql.NewObject(graphql.ObjectConfig{
	Name: "CreateCustomerPayload",
	Fields: graphql.Fields{
		"customer": &graphql.Field{Type: customerType},
		"success":  &graphql.Field{Type: graphql.Boolean},
		"message":  &graphql.Field{Type: graphql.String},
	},
})

var bulkCreateCustomersPayload = graphql.NewObject(graphql.ObjectConfig{
	Name: "BulkCreateCustomersPayload",
	Fields: graphql.Fields{
		"customers": &graphql.Field{Type: graphql.NewList(customerType)},
		"errors":    &graphql.Field{Type: graphql.NewList(graphql.String)},
	},
})

var createProductPayload = graphql.NewObject(graphql.ObjectConfig{
	Name: "CreateProductPayload",
	Fields: graphql.Fields{
		"product": &graphql.Field{Type: productType},
		"success": &graphql.Field{Type: graphql.Boolean},
		"message": &graphql.Field{Type: graphql.String},
	},
})

var createOrderPayload = graphql.NewObject(graphql.ObjectConfig{
	Name: "CreateOrderPayload",
	Fields: graphql.Fields{
		"order":   &graphql.Field{Type: orderType},
		"success": &graphql.Field{Type: graphql.Boolean},
		"message": &graphql.Field{Type: graphql.String},
	},
})

var updateLowStockPayload = graphql.NewObject(graphql.ObjectConfig{
	Name: "UpdateLowStockProductsPayload",
	Fields: graphql.Fields{
		"success":         &graphql.Field{Type: graphql.Boolean},
		"message":         &graphql.Field{Type: graphql.String},
		"updatedProducts": &graphql.Field{Type: graphql.NewList(productType)},
	},
})

// The executor's default resolver reads map keys, so entities are flattened
// into maps keyed by their GraphQL field names.

func customerValue(c *partner.Customer) any {
	if c == nil {
		return nil
	}
	var phone any
	if c.Phone != nil {
		phone = *c.Phone
	}
	return map[string]any{
		"id":        c.ID.String(),
		"name":      c.Name,
		"email":     c.Email,
		"phone":     phone,
		"createdAt": c.CreatedAt,
	}
}

func customerValues(customers []partner.Customer) []any {
	out := make([]any, len(customers))
	for i := range customers {
		out[i] = customerValue(&customers[i])
	}
	return out
}

func productValue(p *catalog.Product) any {
	if p == nil {
		return nil
	}
	return map[string]any{
		"id":    p.ID.String(),
		"name":  p.Name,
		"price": p.Price,
		"stock": p.Stock,
	}
}

func productValues(products []catalog.Product) []any {
	out := make([]any, len(products))
	for i := range products {
		out[i] = productValue(&products[i])
	}
	return out
}

func orderValue(o *trade.Order) any {
	if o == nil {
		return nil
	}
	return map[string]any{
		"id":          o.ID.String(),
		"customer":    customerValue(o.Customer),
		"products":    productValues(o.Products),
		"totalAmount": o.TotalAmount,
		"orderDate":   o.OrderDate,
	}
}

func orderValues(orders []trade.Order) []any {
	out := make([]any, len(orders))
	for i := range orders {
		out[i] = orderValue(&orders[i])
	}
	return out
}
