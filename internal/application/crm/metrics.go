package crm

import (
	"context"

	"github.com/shopspring/decimal"
)

// Metrics receives business counters from the CRM services.
type Metrics interface {
	RecordCustomerCreated(ctx context.Context)
	RecordProductCreated(ctx context.Context)
	RecordOrderCreated(ctx context.Context, amount decimal.Decimal)
	RecordBulkItem(ctx context.Context, succeeded bool)
	RecordRestocked(ctx context.Context, products int)
}

type noopMetrics struct{}

func (noopMetrics) RecordCustomerCreated(context.Context) {}
func (noopMetrics) RecordProductCreated(context.Context) {}
func (noopMetrics) RecordOrderCreated(context.Context, decimal.Decimal) {}
func (noopMetrics) RecordBulkItem(context.Context, bool) {}
func (noopMetrics) RecordRestocked(context.Context, int) {}
