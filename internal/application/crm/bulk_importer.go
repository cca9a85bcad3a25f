package crm

import (
	"context"
	"fmt"

	"github.com/crm/backend/internal/domain/partner"
	"github.com/crm/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// BulkImporter creates many customers in one unit of work. Each input runs in
// its own savepoint: a rejected input is reported and skipped, while a
// datastore failure rolls back the whole batch.
type BulkImporter struct {
	scope   TransactionScope
	logger  *zap.Logger
	metrics Metrics
}

// NewBulkImporter creates a new BulkImporter. Logger and metrics options are
// shared with MutationService.
func NewBulkImporter(scope TransactionScope, opts ...MutationOption) *BulkImporter {
	cfg := NewMutationService(scope, opts...)
	return &BulkImporter{
		scope:   scope,
		logger:  cfg.logger,
		metrics: cfg.metrics,
	}
}

// BulkCreateCustomers applies the customer creation rules to every input in
// order. The returned error is non-nil only for batch-level failures, in
// which case nothing from the batch was committed.
func (b *BulkImporter) BulkCreateCustomers(ctx context.Context, inputs []CreateCustomerInput) (BulkResult, error) {
	var result BulkResult
	err := b.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		result = BulkResult{
			Customers: make([]partner.Customer, 0, len(inputs)),
			Errors:    make([]string, 0),
		}

		for i, in := range inputs {
			if err := ctx.Err(); err != nil {
				return shared.NewDatastoreError("bulk import cancelled", err)
			}

			var created *partner.Customer
			err := repos.Nested(ctx, func(item TransactionalRepositories) error {
				var err error
				created, err = createCustomer(ctx, item.Customers(), in)
				return err
			})
			if err == nil {
				result.Customers = append(result.Customers, *created)
				continue
			}

			de, ok := recoverable(err)
			if !ok {
				return err
			}
			result.Errors = append(result.Errors, fmt.Sprintf("Index %d: %s", i, de.Message))
		}
		return nil
	})

	if err != nil {
		b.logger.Error("Bulk customer import aborted",
			zap.Int("inputs", len(inputs)),
			zap.Error(err),
		)
		return BulkResult{}, shared.NewDatastoreError("bulk import aborted", err).WithCode("BATCH_FAILED")
	}

	for range result.Customers {
		b.metrics.RecordBulkItem(ctx, true)
	}
	for range result.Errors {
		b.metrics.RecordBulkItem(ctx, false)
	}
	b.logger.Info("Bulk customer import finished",
		zap.Int("created", len(result.Customers)),
		zap.Int("rejected", len(result.Errors)),
	)
	return result, nil
}
