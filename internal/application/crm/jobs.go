package crm

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Report streams written by the periodic jobs. A file sink stores each one
// as {stream}_log.txt.
const (
	StreamHeartbeat      = "crm_heartbeat"
	StreamReport         = "crm_report"
	StreamOrderReminders = "order_reminders"
)

const reminderWindow = 7 * 24 * time.Hour

// ReportSink stores log lines produced by the periodic jobs
type ReportSink interface {
	Append(ctx context.Context, stream, line string) error
}

// Jobs bundles the periodic CRM housekeeping tasks
type Jobs struct {
	query  *QueryService
	engine *ReplenishmentEngine
	sink   ReportSink
	logger *zap.Logger
	now    func() time.Time
}

// NewJobs creates the job set
func NewJobs(query *QueryService, engine *ReplenishmentEngine, sink ReportSink, logger *zap.Logger) *Jobs {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Jobs{query: query, engine: engine, sink: sink, logger: logger, now: time.Now}
}

// Heartbeat records that the service is alive
func (j *Jobs) Heartbeat(ctx context.Context) error {
	line := fmt.Sprintf("%s CRM is alive | GraphQL says: %s",
		j.now().Format("02/01/2006-15:04:05"), j.query.Hello())
	return j.sink.Append(ctx, StreamHeartbeat, line)
}

// Report writes the customer, order and revenue totals. A failed summary is
// reported in the line itself rather than failing the job.
func (j *Jobs) Report(ctx context.Context) error {
	ts := j.now().Format(time.DateTime)

	var line string
	summary, err := j.query.Summary(ctx)
	if err != nil {
		j.logger.Error("Failed to build CRM report", zap.Error(err))
		line = fmt.Sprintf("%s - Error generating report: %v", ts, err)
	} else {
		line = fmt.Sprintf("%s - Report: %d customers, %d orders, %s revenue",
			ts, summary.TotalCustomers, summary.TotalOrders, summary.TotalRevenue.StringFixed(2))
	}
	return j.sink.Append(ctx, StreamReport, line)
}

// OrderReminders writes one reminder per order placed in the last week
func (j *Jobs) OrderReminders(ctx context.Context) error {
	orders, err := j.query.RecentOrders(ctx, reminderWindow)
	if err != nil {
		return fmt.Errorf("failed to fetch recent orders: %w", err)
	}

	ts := j.now().Format(time.DateTime)
	for _, o := range orders {
		email := ""
		if o.Customer != nil {
			email = o.Customer.Email
		}
		line := fmt.Sprintf("%s - Reminder: Order ID %s, Customer Email %s", ts, o.ID, email)
		if err := j.sink.Append(ctx, StreamOrderReminders, line); err != nil {
			return err
		}
	}
	j.logger.Info("Order reminders processed", zap.Int("orders", len(orders)))
	return nil
}

// ReplenishLowStock runs the replenishment engine with its defaults
func (j *Jobs) ReplenishLowStock(ctx context.Context) error {
	res, err := j.engine.Replenish(ctx, ReplenishInput{})
	if err != nil {
		return err
	}
	j.logger.Info("Low stock replenishment", zap.String("message", res.Message))
	return nil
}
