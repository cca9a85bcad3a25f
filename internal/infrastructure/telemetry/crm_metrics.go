package telemetry

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when metrics are built without a meter.
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// AttrResult labels bulk import items as ok or failed.
var AttrResult = attribute.Key("result")

// OrderAmountBuckets are histogram boundaries for order totals.
var OrderAmountBuckets = []float64{10, 50, 100, 250, 500, 1000, 2500, 5000, 10000}

var (
	resultOK     = metric.WithAttributes(AttrResult.String("ok"))
	resultFailed = metric.WithAttributes(AttrResult.String("failed"))
)

// CRMMetrics records CRM business metrics.
type CRMMetrics struct {
	customersCreated metric.Int64Counter
	productsCreated  metric.Int64Counter
	ordersCreated    metric.Int64Counter
	restocked        metric.Int64Counter
	bulkItems        metric.Int64Counter
	orderAmount      metric.Float64Histogram
}

// NewCRMMetrics registers the CRM instruments on meter.
func NewCRMMetrics(meter metric.Meter) (*CRMMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	m := &CRMMetrics{}
	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{&m.customersCreated, "crm_customers_created_total", "Customers created"},
		{&m.productsCreated, "crm_products_created_total", "Products created"},
		{&m.ordersCreated, "crm_orders_created_total", "Orders created"},
		{&m.restocked, "crm_products_restocked_total", "Products restocked by replenishment"},
		{&m.bulkItems, "crm_bulk_import_items_total", "Bulk import items by result"},
	}
	for _, c := range counters {
		counter, err := meter.Int64Counter(c.name, metric.WithDescription(c.desc), metric.WithUnit("{item}"))
		if err != nil {
			return nil, fmt.Errorf("failed to create counter %s: %w", c.name, err)
		}
		*c.dst = counter
	}

	hist, err := meter.Float64Histogram("crm_order_amount",
		metric.WithDescription("Order totals"),
		metric.WithExplicitBucketBoundaries(OrderAmountBuckets...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create histogram crm_order_amount: %w", err)
	}
	m.orderAmount = hist
	return m, nil
}

func (m *CRMMetrics) RecordCustomerCreated(ctx context.Context) {
	m.customersCreated.Add(ctx, 1)
}

func (m *CRMMetrics) RecordProductCreated(ctx context.Context) {
	m.productsCreated.Add(ctx, 1)
}

// RecordOrderCreated counts the order and observes its total
func (m *CRMMetrics) RecordOrderCreated(ctx context.Context, total decimal.Decimal) {
	m.ordersCreated.Add(ctx, 1)
	m.orderAmount.Record(ctx, total.InexactFloat64())
}

func (m *CRMMetrics) RecordBulkItem(ctx context.Context, ok bool) {
	if ok {
		m.bulkItems.Add(ctx, 1, resultOK)
		return
	}
	m.bulkItems.Add(ctx, 1, resultFailed)
}

// RecordRestocked adds n restocked products; zero is not recorded
func (m *CRMMetrics) RecordRestocked(ctx context.Context, n int) {
	if n <= 0 {
		return
	}
	m.restocked.Add(ctx, int64(n))
}
