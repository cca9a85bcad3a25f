package crm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/crm/backend/internal/domain/catalog"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newStockedProduct(t *testing.T, name string, stock int) catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, decimal.NewFromInt(10), stock)
	require.NoError(t, err)
	return *p
}

func TestReplenishmentEngine_RestocksLowStock(t *testing.T) {
	ctx := context.Background()
	r := newMockRepos()
	engine := NewReplenishmentEngine(r.scope)

	a := newStockedProduct(t, "A", 5)
	c := newStockedProduct(t, "C", 3)
	r.products.On("FindBelowStock", ctx, 10).Return([]catalog.Product{a, c}, nil).Once()
	r.products.On("UpdateStock", ctx, a.ID, 15).Return(nil).Once()
	r.products.On("UpdateStock", ctx, c.ID, 13).Return(nil).Once()

	res, err := engine.Replenish(ctx, ReplenishInput{})

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "2 products restocked by 10 units", res.Message)
	require.Len(t, res.Products, 2)
	assert.Equal(t, 15, res.Products[0].Stock)
	assert.Equal(t, 13, res.Products[1].Stock)
	r.products.AssertExpectations(t)

	// The second run finds nothing below the threshold any more
	r.products.On("FindBelowStock", ctx, 10).Return([]catalog.Product{}, nil).Once()

	res, err = engine.Replenish(ctx, ReplenishInput{})

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "No products needed restocking", res.Message)
	assert.Empty(t, res.Products)
}

func TestReplenishmentEngine_CustomIncrementAndThreshold(t *testing.T) {
	ctx := context.Background()
	r := newMockRepos()
	engine := NewReplenishmentEngine(r.scope)

	p := newStockedProduct(t, "Cable", 18)
	r.products.On("FindBelowStock", ctx, 20).Return([]catalog.Product{p}, nil)
	r.products.On("UpdateStock", ctx, p.ID, 43).Return(nil)

	res, err := engine.Replenish(ctx, ReplenishInput{Threshold: intPtr(20), Increment: intPtr(25)})

	require.NoError(t, err)
	assert.Equal(t, "1 products restocked by 25 units", res.Message)
	assert.Equal(t, 20, res.Threshold)
	assert.Equal(t, 25, res.Increment)
}

func TestReplenishmentEngine_RejectsNegativeInput(t *testing.T) {
	r := newMockRepos()
	engine := NewReplenishmentEngine(r.scope)

	res, err := engine.Replenish(context.Background(), ReplenishInput{Increment: intPtr(-1)})

	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "INVALID_INCREMENT", res.Err.Code)

	res, err = engine.Replenish(context.Background(), ReplenishInput{Threshold: intPtr(-1)})

	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "INVALID_THRESHOLD", res.Err.Code)
	r.products.AssertNotCalled(t, "FindBelowStock", mock.Anything, mock.Anything)
}

func TestReplenishmentEngine_UpdateFailure(t *testing.T) {
	ctx := context.Background()
	r := newMockRepos()
	engine := NewReplenishmentEngine(r.scope)

	p := newStockedProduct(t, "A", 1)
	r.products.On("FindBelowStock", ctx, 10).Return([]catalog.Product{p}, nil)
	r.products.On("UpdateStock", ctx, p.ID, 11).Return(errors.New("deadlock detected"))

	_, err := engine.Replenish(ctx, ReplenishInput{})

	require.Error(t, err)
	assert.True(t, shared.IsDatastore(err))
}

func TestReplenishmentEngine_BusyLock(t *testing.T) {
	r := newMockRepos()
	locker := NewLocalLocker()
	engine := NewReplenishmentEngine(r.scope, WithLocker(locker, time.Second))

	release, err := locker.Acquire(context.Background(), replenishLockKey, time.Second)
	require.NoError(t, err)
	defer func() { _ = release(context.Background()) }()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = engine.Replenish(ctx, ReplenishInput{})

	assert.ErrorIs(t, err, ErrReplenishBusy)
	r.products.AssertNotCalled(t, "FindBelowStock", mock.Anything, mock.Anything)
}

func TestLocalLocker_ReleaseIsIdempotent(t *testing.T) {
	locker := NewLocalLocker()
	ctx := context.Background()

	release, err := locker.Acquire(ctx, "k", 0)
	require.NoError(t, err)
	require.NoError(t, release(ctx))
	require.NoError(t, release(ctx))

	release, err = locker.Acquire(ctx, "k", 0)
	require.NoError(t, err)
	require.NoError(t, release(ctx))
}

func TestRestockMessage(t *testing.T) {
	assert.Equal(t, "No products needed restocking", RestockMessage(0, 10))
	assert.Equal(t, "3 products restocked by 5 units", RestockMessage(3, 5))
}
