package telemetry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultSlowQuery = 200 * time.Millisecond
	queryStartKey    = "crm_metrics:started_at"
)

// DBDurationBuckets are histogram boundaries, in seconds, for query latency.
var DBDurationBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}

// Attribute keys on database metrics.
var (
	AttrDBOperation = attribute.Key("db.operation")
	AttrDBTable     = attribute.Key("db.sql.table")
	AttrDBState     = attribute.Key("state")
)

// DBMetricsConfig holds configuration for database metrics.
type DBMetricsConfig struct {
	Enabled            bool
	SlowQueryThreshold time.Duration
}

// DBMetrics counts CRM queries by operation and reports the connection pool
// on every collection.
type DBMetrics struct {
	queries   metric.Int64Counter
	duration  metric.Float64Histogram
	slow      metric.Int64Counter
	threshold time.Duration
	pool      metric.Registration
}

// NewDBMetrics registers the query instruments on meter and, when sqlDB is
// not nil, an observable pool gauge reading sqlDB.Stats.
func NewDBMetrics(meter metric.Meter, sqlDB *sql.DB, threshold time.Duration) (*DBMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	if threshold <= 0 {
		threshold = defaultSlowQuery
	}
	m := &DBMetrics{threshold: threshold}

	var err error
	if m.queries, err = meter.Int64Counter("db_query_total",
		metric.WithDescription("Database queries by operation"),
		metric.WithUnit("{query}"),
	); err != nil {
		return nil, fmt.Errorf("failed to create counter db_query_total: %w", err)
	}
	if m.duration, err = meter.Float64Histogram("db_query_duration_seconds",
		metric.WithDescription("Database query latency"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(DBDurationBuckets...),
	); err != nil {
		return nil, fmt.Errorf("failed to create histogram db_query_duration_seconds: %w", err)
	}
	if m.slow, err = meter.Int64Counter("db_slow_query_total",
		metric.WithDescription("Queries slower than the slow query threshold, by table"),
		metric.WithUnit("{query}"),
	); err != nil {
		return nil, fmt.Errorf("failed to create counter db_slow_query_total: %w", err)
	}

	if sqlDB == nil {
		return m, nil
	}
	conns, err := meter.Int64ObservableGauge("db_pool_connections",
		metric.WithDescription("Connections in the pool by state"),
		metric.WithUnit("{connection}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gauge db_pool_connections: %w", err)
	}
	m.pool, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		stats := sqlDB.Stats()
		o.ObserveInt64(conns, int64(stats.Idle), metric.WithAttributes(AttrDBState.String("idle")))
		o.ObserveInt64(conns, int64(stats.InUse), metric.WithAttributes(AttrDBState.String("in_use")))
		o.ObserveInt64(conns, int64(stats.MaxOpenConnections), metric.WithAttributes(AttrDBState.String("max")))
		return nil
	}, conns)
	if err != nil {
		return nil, fmt.Errorf("failed to register pool callback: %w", err)
	}
	return m, nil
}

// RecordQuery records one finished statement
func (m *DBMetrics) RecordQuery(ctx context.Context, operation, table string, elapsed time.Duration) {
	op := metric.WithAttributes(AttrDBOperation.String(operation))
	m.queries.Add(ctx, 1, op)
	m.duration.Record(ctx, elapsed.Seconds(), op)
	if elapsed > m.threshold {
		if table == "" {
			table = "unknown"
		}
		m.slow.Add(ctx, 1, metric.WithAttributes(AttrDBTable.String(table)))
	}
}

// Stop detaches the pool callback. It is safe to call on nil.
func (m *DBMetrics) Stop() error {
	if m == nil || m.pool == nil {
		return nil
	}
	return m.pool.Unregister()
}

// Name implements gorm.Plugin
func (m *DBMetrics) Name() string {
	return "crm_db_metrics"
}

// Initialize implements gorm.Plugin. Raw statements are classified by their
// leading keyword.
func (m *DBMetrics) Initialize(db *gorm.DB) error {
	cb := db.Callback()
	return errors.Join(
		cb.Create().Before("gorm:create").Register("crm_metrics:before_create", markStart),
		cb.Query().Before("gorm:query").Register("crm_metrics:before_query", markStart),
		cb.Update().Before("gorm:update").Register("crm_metrics:before_update", markStart),
		cb.Delete().Before("gorm:delete").Register("crm_metrics:before_delete", markStart),
		cb.Row().Before("gorm:row").Register("crm_metrics:before_row", markStart),
		cb.Raw().Before("gorm:raw").Register("crm_metrics:before_raw", markStart),

		cb.Create().After("gorm:create").Register("crm_metrics:after_create", m.after("INSERT")),
		cb.Query().After("gorm:query").Register("crm_metrics:after_query", m.after("SELECT")),
		cb.Update().After("gorm:update").Register("crm_metrics:after_update", m.after("UPDATE")),
		cb.Delete().After("gorm:delete").Register("crm_metrics:after_delete", m.after("DELETE")),
		cb.Row().After("gorm:row").Register("crm_metrics:after_row", m.after("")),
		cb.Raw().After("gorm:raw").Register("crm_metrics:after_raw", m.after("")),
	)
}

func markStart(db *gorm.DB) {
	db.InstanceSet(queryStartKey, time.Now())
}

func (m *DBMetrics) after(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		var elapsed time.Duration
		if v, ok := db.InstanceGet(queryStartKey); ok {
			if started, ok := v.(time.Time); ok {
				elapsed = time.Since(started)
			}
		}
		op := operation
		if op == "" {
			op = operationOf(db.Statement.SQL.String())
		}
		ctx := db.Statement.Context
		if ctx == nil {
			ctx = context.Background()
		}
		m.RecordQuery(ctx, op, db.Statement.Table, elapsed)
	}
}

func operationOf(sql string) string {
	sql = strings.ToUpper(strings.TrimSpace(sql))
	for _, op := range []string{"SELECT", "INSERT", "UPDATE", "DELETE"} {
		if strings.HasPrefix(sql, op) {
			return op
		}
	}
	return "OTHER"
}

// RegisterDBMetrics installs query and pool metrics on db. It returns nil
// metrics when disabled; Stop is nil-safe.
func RegisterDBMetrics(db *gorm.DB, meter metric.Meter, cfg DBMetricsConfig, logger *zap.Logger) (*DBMetrics, error) {
	if !cfg.Enabled {
		logger.Debug("Database metrics disabled")
		return nil, nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	m, err := NewDBMetrics(meter, sqlDB, cfg.SlowQueryThreshold)
	if err != nil {
		return nil, err
	}
	if err := db.Use(m); err != nil {
		_ = m.Stop()
		return nil, err
	}
	logger.Info("Database metrics enabled", zap.Duration("slow_query_threshold", m.threshold))
	return m, nil
}
