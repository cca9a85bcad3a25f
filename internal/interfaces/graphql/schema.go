package graphql

import (
	"github.com/crm/backend/internal/application/crm"
	"github.com/graphql-go/graphql"
)

const (
	defaultIncrement = 10
	defaultThreshold = 10
)

// NewSchema builds the CRM schema with a single Query and Mutation root
func NewSchema(r *Resolver) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"hello":     &graphql.Field{Type: graphql.String, Resolve: r.hello},
			"customers": &graphql.Field{Type: graphql.NewList(customerType), Resolve: r.customers},
			"products":  &graphql.Field{Type: graphql.NewList(productType), Resolve: r.products},
			"orders":    &graphql.Field{Type: graphql.NewList(orderType), Resolve: r.orders},
			"totalCustomers": &graphql.Field{
				Type: graphql.Int,
				Resolve: r.summaryField("totalCustomers", func(s crm.CRMSummary) any {
					return s.TotalCustomers
				}),
			},
			"totalOrders": &graphql.Field{
				Type: graphql.Int,
				Resolve: r.summaryField("totalOrders", func(s crm.CRMSummary) any {
					return s.TotalOrders
				}),
			},
			"totalRevenue": &graphql.Field{
				Type: Decimal,
				Resolve: r.summaryField("totalRevenue", func(s crm.CRMSummary) any {
					return s.TotalRevenue
				}),
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createCustomer": &graphql.Field{
				Type: createCustomerPayload,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(customerInputType)},
				},
				Resolve: r.createCustomer,
			},
			"bulkCreateCustomers": &graphql.Field{
				Type: bulkCreateCustomersPayload,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(customerInputType))},
				},
				Resolve: r.bulkCreateCustomers,
			},
			"createProduct": &graphql.Field{
				Type: createProductPayload,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(productInputType)},
				},
				Resolve: r.createProduct,
			},
			"createOrder": &graphql.Field{
				Type: createOrderPayload,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(orderInputType)},
				},
				Resolve: r.createOrder,
			},
			"updateLowStockProducts": &graphql.Field{
				Type: updateLowStockPayload,
				Args: graphql.FieldConfigArgument{
					"increment": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: defaultIncrement},
					"threshold": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: defaultThreshold},
				},
				Resolve: r.updateLowStockProducts,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}
