package graphql

import (
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const createCustomerMutation = `
mutation($input: CustomerInput!) {
	createCustomer(input: $input) {
		customer { id name email phone }
		success
		message
	}
}`

const createProductMutation = `
mutation($input: ProductInput!) {
	createProduct(input: $input) {
		product { id name price stock }
		success
		message
	}
}`

func createCustomer(t *testing.T, schema graphql.Schema, name, email string) string {
	t.Helper()
	data := exec(t, schema, createCustomerMutation, map[string]any{
		"input": map[string]any{"name": name, "email": email},
	})
	require.Equal(t, true, field(data, "createCustomer", "success"))
	return field(data, "createCustomer", "customer", "id").(string)
}

func createProduct(t *testing.T, schema graphql.Schema, name string, price any, stock int) string {
	t.Helper()
	data := exec(t, schema, createProductMutation, map[string]any{
		"input": map[string]any{"name": name, "price": price, "stock": stock},
	})
	require.Equal(t, true, field(data, "createProduct", "success"), data)
	return field(data, "createProduct", "product", "id").(string)
}

func TestSchema_Hello(t *testing.T) {
	schema, _ := newTestSchema(t)

	data := exec(t, schema, `{ hello }`, nil)
	assert.Equal(t, "Hello, GraphQL!", data["hello"])
}

func TestSchema_CreateCustomer(t *testing.T) {
	schema, _ := newTestSchema(t)

	data := exec(t, schema, createCustomerMutation, map[string]any{
		"input": map[string]any{"name": "Alice", "email": "alice@example.com", "phone": "+1234567890"},
	})

	payload := field(data, "createCustomer").(map[string]any)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, "Customer created successfully", payload["message"])
	assert.Equal(t, "+1234567890", field(data, "createCustomer", "customer", "phone"))
}

func TestSchema_CreateCustomerRejected(t *testing.T) {
	schema, _ := newTestSchema(t)
	createCustomer(t, schema, "Alice", "alice@example.com")

	data := exec(t, schema, createCustomerMutation, map[string]any{
		"input": map[string]any{"name": "Alice Again", "email": "alice@example.com"},
	})

	payload := field(data, "createCustomer").(map[string]any)
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "Email already exists", payload["message"])
	assert.Nil(t, payload["customer"])
}

func TestSchema_BulkCreateCustomers(t *testing.T) {
	schema, _ := newTestSchema(t)

	data := exec(t, schema, `
	mutation {
		bulkCreateCustomers(input: [
			{name: "Alice", email: "alice@example.com"},
			{name: "Bob", email: "bob@example.com", phone: "bad"},
			{name: "Carol", email: "carol@example.com", phone: "123-456-7890"}
		]) {
			customers { name }
			errors
		}
	}`, nil)

	customers := field(data, "bulkCreateCustomers", "customers").([]any)
	require.Len(t, customers, 2)
	assert.Equal(t, "Carol", customers[1].(map[string]any)["name"])
	assert.Equal(t, []any{"Index 1: Invalid phone format"}, field(data, "bulkCreateCustomers", "errors"))
}

func TestSchema_CreateProductPriceForms(t *testing.T) {
	schema, _ := newTestSchema(t)

	data := exec(t, schema, `mutation { createProduct(input: {name: "Laptop", price: 999.99, stock: 10}) { product { price stock } success } }`, nil)
	assert.Equal(t, "999.99", field(data, "createProduct", "product", "price"))

	data = exec(t, schema, `mutation { createProduct(input: {name: "Mouse", price: "19.99"}) { product { price stock } } }`, nil)
	assert.Equal(t, "19.99", field(data, "createProduct", "product", "price"))
	assert.Equal(t, 0, field(data, "createProduct", "product", "stock"))

	data = exec(t, schema, createProductMutation, map[string]any{
		"input": map[string]any{"name": "Free", "price": 0},
	})
	assert.Equal(t, false, field(data, "createProduct", "success"))
	assert.Equal(t, "Price must be positive", field(data, "createProduct", "message"))
}

func TestSchema_CreateOrderAndQuery(t *testing.T) {
	schema, _ := newTestSchema(t)
	customerID := createCustomer(t, schema, "Alice", "alice@example.com")
	laptop := createProduct(t, schema, "Laptop", "999.99", 10)
	mouse := createProduct(t, schema, "Mouse", "19.99", 50)

	data := exec(t, schema, `
	mutation($input: OrderInput!) {
		createOrder(input: $input) {
			order { id totalAmount orderDate customer { email } products { name } }
			success
			message
		}
	}`, map[string]any{
		"input": map[string]any{
			"customerId": customerID,
			"productIds": []any{laptop, mouse},
			"orderDate":  "2024-01-15T10:00:00Z",
		},
	})

	assert.Equal(t, true, field(data, "createOrder", "success"))
	assert.Equal(t, "1019.98", field(data, "createOrder", "order", "totalAmount"))
	assert.Equal(t, "2024-01-15T10:00:00Z", field(data, "createOrder", "order", "orderDate"))
	assert.Equal(t, "alice@example.com", field(data, "createOrder", "order", "customer", "email"))

	data = exec(t, schema, `{ orders { customer { name } products { name } } totalCustomers totalOrders totalRevenue }`, nil)
	orders := data["orders"].([]any)
	require.Len(t, orders, 1)
	assert.Len(t, orders[0].(map[string]any)["products"], 2)
	assert.Equal(t, 1, data["totalCustomers"])
	assert.Equal(t, 1, data["totalOrders"])
	assert.Equal(t, "1019.98", data["totalRevenue"])
}

func TestSchema_CreateOrderRejected(t *testing.T) {
	schema, _ := newTestSchema(t)
	customerID := createCustomer(t, schema, "Alice", "alice@example.com")
	laptop := createProduct(t, schema, "Laptop", "999.99", 10)

	data := exec(t, schema, `
	mutation($input: OrderInput!) {
		createOrder(input: $input) { order { id } success message }
	}`, map[string]any{
		"input": map[string]any{
			"customerId": customerID,
			"productIds": []any{laptop, laptop},
		},
	})

	assert.Equal(t, false, field(data, "createOrder", "success"))
	assert.Equal(t, "Some product IDs are invalid", field(data, "createOrder", "message"))
	assert.Nil(t, field(data, "createOrder", "order"))
}

func TestSchema_CreateOrderNullProductID(t *testing.T) {
	schema, _ := newTestSchema(t)
	customerID := createCustomer(t, schema, "Alice", "alice@example.com")
	laptop := createProduct(t, schema, "Laptop", "10.00", 10)

	data := exec(t, schema, `
	mutation($input: OrderInput!) {
		createOrder(input: $input) { order { id } success message }
	}`, map[string]any{
		"input": map[string]any{
			"customerId": customerID,
			"productIds": []any{laptop, nil},
		},
	})

	assert.Equal(t, false, field(data, "createOrder", "success"))
	assert.Equal(t, "Some product IDs are invalid", field(data, "createOrder", "message"))
	assert.Nil(t, field(data, "createOrder", "order"))

	orders := exec(t, schema, `{ orders { id } }`, nil)
	assert.Empty(t, orders["orders"])
}

func TestSchema_UpdateLowStockProducts(t *testing.T) {
	schema, _ := newTestSchema(t)
	createProduct(t, schema, "Keyboard", "79.99", 5)
	createProduct(t, schema, "Monitor", "299.99", 25)

	data := exec(t, schema, `mutation { updateLowStockProducts { success message updatedProducts { name stock } } }`, nil)

	assert.Equal(t, true, field(data, "updateLowStockProducts", "success"))
	assert.Equal(t, "1 products restocked by 10 units", field(data, "updateLowStockProducts", "message"))
	updated := field(data, "updateLowStockProducts", "updatedProducts").([]any)
	require.Len(t, updated, 1)
	assert.Equal(t, 15, updated[0].(map[string]any)["stock"])

	data = exec(t, schema, `mutation { updateLowStockProducts(increment: 3, threshold: 100) { message } }`, nil)
	assert.Equal(t, "2 products restocked by 3 units", field(data, "updateLowStockProducts", "message"))
}

func TestSchema_DatastoreFailureIsGraphQLError(t *testing.T) {
	schema, sqlDB := newTestSchema(t)
	require.NoError(t, sqlDB.Close())

	res := graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: `{ customers { id } }`,
		Context:       t.Context(),
	})

	require.True(t, res.HasErrors())
	assert.NotContains(t, res.Errors[0].Message, "sql:")
	assert.Nil(t, res.Data.(map[string]any)["customers"])
}
