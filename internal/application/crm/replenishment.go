package crm

import (
	"context"
	"fmt"
	"time"

	"github.com/crm/backend/internal/domain/catalog"
	"github.com/crm/backend/internal/domain/shared"
	"go.uber.org/zap"
)

const (
	DefaultLowStockThreshold = 10
	DefaultRestockIncrement  = 10

	replenishLockKey = "crm:inventory:replenish"
	msgNoRestock     = "No products needed restocking"
)

// ErrReplenishBusy is returned when another replenishment run holds the lock
// for longer than the caller is willing to wait.
var ErrReplenishBusy = shared.NewDatastoreError("replenishment already running", nil).WithCode("REPLENISH_BUSY")

// Locker serializes work across processes. Acquire blocks until the lock is
// held or ctx is done.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(context.Context) error, err error)
}

// ReplenishmentEngine raises the stock of products below a threshold. Runs
// are single-writer: a Locker serializes them and the selected rows are
// locked for the duration of the transaction.
type ReplenishmentEngine struct {
	scope     TransactionScope
	locker    Locker
	lockTTL   time.Duration
	threshold int
	increment int
	logger    *zap.Logger
	metrics   Metrics
}

// ReplenishOption configures a ReplenishmentEngine
type ReplenishOption func(*ReplenishmentEngine)

// WithLocker sets the lock used to serialize runs
func WithLocker(l Locker, ttl time.Duration) ReplenishOption {
	return func(e *ReplenishmentEngine) {
		e.locker = l
		if ttl > 0 {
			e.lockTTL = ttl
		}
	}
}

// WithDefaults overrides the threshold and increment used when a run does
// not specify them.
func WithDefaults(threshold, increment int) ReplenishOption {
	return func(e *ReplenishmentEngine) {
		e.threshold = threshold
		e.increment = increment
	}
}

// WithReplenishLogger sets the engine logger
func WithReplenishLogger(logger *zap.Logger) ReplenishOption {
	return func(e *ReplenishmentEngine) {
		e.logger = logger
	}
}

// WithReplenishMetrics sets the business metrics recorder
func WithReplenishMetrics(m Metrics) ReplenishOption {
	return func(e *ReplenishmentEngine) {
		e.metrics = m
	}
}

// NewReplenishmentEngine creates a new ReplenishmentEngine
func NewReplenishmentEngine(scope TransactionScope, opts ...ReplenishOption) *ReplenishmentEngine {
	e := &ReplenishmentEngine{
		scope:     scope,
		locker:    NewLocalLocker(),
		lockTTL:   30 * time.Second,
		threshold: DefaultLowStockThreshold,
		increment: DefaultRestockIncrement,
		logger:    zap.NewNop(),
		metrics:   noopMetrics{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Replenish adds the increment to every product whose stock is below the
// threshold. Running it twice restocks twice; each run only touches products
// that are below the threshold at the time it runs.
func (e *ReplenishmentEngine) Replenish(ctx context.Context, in ReplenishInput) (ReplenishResult, error) {
	threshold, increment := e.threshold, e.increment
	if in.Threshold != nil {
		threshold = *in.Threshold
	}
	if in.Increment != nil {
		increment = *in.Increment
	}
	result := ReplenishResult{Threshold: threshold, Increment: increment, Products: []catalog.Product{}}

	if threshold < 0 {
		result.Err = shared.NewValidationError("INVALID_THRESHOLD", "Threshold cannot be negative")
		result.Message = result.Err.Message
		return result, nil
	}
	if increment < 0 {
		result.Err = shared.NewValidationError("INVALID_INCREMENT", "Increment cannot be negative")
		result.Message = result.Err.Message
		return result, nil
	}

	release, err := e.locker.Acquire(ctx, replenishLockKey, e.lockTTL)
	if err != nil {
		e.logger.Warn("Could not acquire replenishment lock", zap.Error(err))
		return ReplenishResult{}, ErrReplenishBusy
	}
	defer func() {
		// The run may have been cancelled; the lock still has to go.
		if err := release(context.WithoutCancel(ctx)); err != nil {
			e.logger.Warn("Failed to release replenishment lock", zap.Error(err))
		}
	}()

	var updated []catalog.Product
	err = e.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		low, err := repos.Products().FindBelowStock(ctx, threshold)
		if err != nil {
			return err
		}
		updated = make([]catalog.Product, 0, len(low))
		for i := range low {
			p := low[i]
			if err := p.Restock(increment); err != nil {
				return err
			}
			if err := repos.Products().UpdateStock(ctx, p.ID, p.Stock); err != nil {
				return err
			}
			updated = append(updated, p)
		}
		return nil
	})
	if err != nil {
		e.logger.Error("Replenishment failed", zap.Error(err))
		return ReplenishResult{}, asDatastoreError(err)
	}

	result.Success = true
	result.Products = updated
	result.Message = RestockMessage(len(updated), increment)
	e.metrics.RecordRestocked(ctx, len(updated))
	e.logger.Info("Replenishment finished",
		zap.Int("restocked", len(updated)),
		zap.Int("threshold", threshold),
		zap.Int("increment", increment),
	)
	return result, nil
}

// RestockMessage renders the human readable replenishment summary
func RestockMessage(n, increment int) string {
	if n == 0 {
		return msgNoRestock
	}
	return fmt.Sprintf("%d products restocked by %d units", n, increment)
}
