//go:build integration

package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/crm/backend/internal/application/crm"
	"github.com/crm/backend/internal/domain/catalog"
	"github.com/crm/backend/internal/domain/partner"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/domain/trade"
	"github.com/crm/backend/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestCRMRepositories_Integration(t *testing.T) {
	tdb := NewTestDB(t)
	customers, products, orders := persistence.NewCRMRepositories(tdb.DB)
	ctx := context.Background()

	t.Run("unique email index rejects duplicates", func(t *testing.T) {
		tdb.CleanTables()

		first, err := partner.NewCustomer("Alice", "alice@example.com", nil)
		require.NoError(t, err)
		require.NoError(t, customers.Save(ctx, first))

		dup, err := partner.NewCustomer("Alice Two", "alice@example.com", nil)
		require.NoError(t, err)
		err = customers.Save(ctx, dup)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)

		exists, err := customers.ExistsByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("price check constraint", func(t *testing.T) {
		tdb.CleanTables()
		err := tdb.DB.Exec(
			"INSERT INTO crm_products (id, name, price, stock) VALUES (?, 'Bad', 0, 1)", uuid.New(),
		).Error
		assert.Error(t, err)
	})

	t.Run("below stock and totals", func(t *testing.T) {
		tdb.CleanTables()

		customer, err := partner.NewCustomer("Bob", "bob@example.com", nil)
		require.NoError(t, err)
		require.NoError(t, customers.Save(ctx, customer))

		var saved []catalog.Product
		for _, p := range []struct {
			name  string
			price string
			stock int
		}{
			{"Laptop", "999.99", 50},
			{"Mouse", "29.99", 2},
			{"Cable", "4.50", 0},
		} {
			product, err := catalog.NewProduct(p.name, decimal.RequireFromString(p.price), p.stock)
			require.NoError(t, err)
			require.NoError(t, products.Save(ctx, product))
			saved = append(saved, *product)
		}

		low, err := products.FindBelowStock(ctx, 10)
		require.NoError(t, err)
		assert.Len(t, low, 2)

		order, err := trade.NewOrder(customer, saved[:2], time.Now())
		require.NoError(t, err)
		require.NoError(t, orders.Save(ctx, order))

		total, err := orders.SumTotalAmount(ctx)
		require.NoError(t, err)
		assert.Equal(t, "1029.98", total.StringFixed(2))

		all, err := orders.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Len(t, all[0].Products, 2)
		require.NotNil(t, all[0].Customer)
		assert.Equal(t, "bob@example.com", all[0].Customer.Email)
	})
}

func TestConcurrentCustomerCreation_Integration(t *testing.T) {
	tdb := NewTestDB(t)
	log := zaptest.NewLogger(t)
	mutations := crm.NewMutationService(persistence.NewGormTransactionScope(tdb.DB), crm.WithLogger(log))
	ctx := context.Background()

	const workers = 8
	results := make([]crm.Result[partner.Customer], workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = mutations.CreateCustomer(ctx, crm.CreateCustomerInput{
				Name: "Racer", Email: "race@example.com",
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for i := range results {
		require.NoError(t, errs[i])
		if results[i].Success {
			succeeded++
			continue
		}
		assert.Equal(t, partner.MsgEmailExists, results[i].Message)
	}
	assert.Equal(t, 1, succeeded)
}

func TestConcurrentReplenishment_Integration(t *testing.T) {
	tdb := NewTestDB(t)
	log := zaptest.NewLogger(t)
	scope := persistence.NewGormTransactionScope(tdb.DB)
	mutations := crm.NewMutationService(scope, crm.WithLogger(log))
	engine := crm.NewReplenishmentEngine(scope, crm.WithReplenishLogger(log))
	ctx := context.Background()

	stock := 0
	res, err := mutations.CreateProduct(ctx, crm.CreateProductInput{
		Name: "Widget", Price: decimal.RequireFromString("1.00"), Stock: &stock,
	})
	require.NoError(t, err)
	require.True(t, res.Success)

	const runs = 4
	var wg sync.WaitGroup
	var mu sync.Mutex
	restocked := 0
	for i := 0; i < runs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := engine.Replenish(ctx, crm.ReplenishInput{})
			if err != nil {
				assert.ErrorIs(t, err, crm.ErrReplenishBusy)
				return
			}
			mu.Lock()
			restocked += len(out.Products)
			mu.Unlock()
		}()
	}
	wg.Wait()

	// Once the product is at 10 it is no longer below the threshold, so the
	// stock only ever moves by exactly one increment.
	_, products, _ := persistence.NewCRMRepositories(tdb.DB)
	all, err := products.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 10, all[0].Stock)
	assert.Equal(t, 1, restocked)
}
