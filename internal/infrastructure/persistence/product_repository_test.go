package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/crm/backend/internal/domain/catalog"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustProduct(t *testing.T, name, price string, stock int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, decimal.RequireFromString(price), stock)
	require.NoError(t, err)
	return p
}

func TestGormProductRepository(t *testing.T) {
	repo := NewGormProductRepository(setupCRMTestDB(t))
	ctx := context.Background()

	widget := mustProduct(t, "Widget", "19.99", 3)
	gadget := mustProduct(t, "Gadget", "5.00", 50)
	require.NoError(t, repo.Save(ctx, widget))
	require.NoError(t, repo.Save(ctx, gadget))

	t.Run("find all keeps price", func(t *testing.T) {
		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.True(t, all[0].Price.Equal(decimal.RequireFromString("19.99")))
	})

	t.Run("find by ids skips unknown", func(t *testing.T) {
		found, err := repo.FindByIDs(ctx, []uuid.UUID{widget.ID, uuid.New()})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, widget.ID, found[0].ID)
	})

	t.Run("find by empty ids", func(t *testing.T) {
		found, err := repo.FindByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("find below stock", func(t *testing.T) {
		low, err := repo.FindBelowStock(ctx, 10)
		require.NoError(t, err)
		require.Len(t, low, 1)
		assert.Equal(t, "Widget", low[0].Name)
	})

	t.Run("update stock", func(t *testing.T) {
		require.NoError(t, repo.UpdateStock(ctx, widget.ID, 13))
		found, err := repo.FindByIDs(ctx, []uuid.UUID{widget.ID})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, 13, found[0].Stock)
	})

	t.Run("update stock of missing product", func(t *testing.T) {
		err := repo.UpdateStock(ctx, uuid.New(), 1)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormProductRepository_FindBelowStockLocksOnPostgres(t *testing.T) {
	db, mock, _ := newMockDB(t)
	repo := NewGormProductRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "price", "stock"}).
		AddRow(uuid.New(), "Widget", "19.99", 2)
	mock.ExpectQuery(`SELECT \* FROM "crm_products" WHERE stock < \$1 ORDER BY created_at ASC FOR UPDATE`).
		WithArgs(10).
		WillReturnRows(rows)

	low, err := repo.FindBelowStock(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, 2, low[0].Stock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormProductRepository_DatastoreError(t *testing.T) {
	db, mock, _ := newMockDB(t)
	repo := NewGormProductRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "crm_products"`).
		WillReturnError(errors.New("connection refused"))

	_, err := repo.FindAll(context.Background())
	require.Error(t, err)
	assert.True(t, shared.IsDatastore(err))
}
