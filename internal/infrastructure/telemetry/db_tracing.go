package telemetry

import (
	"errors"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	Enabled    bool
	LogFullSQL bool // include query variables in spans
	DBName     string
}

// RegisterDBTracing installs the otelgorm plugin plus a callback that tags
// spans with the affected table and row count. The callback runs before
// otelgorm ends the span.
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig, logger *zap.Logger) error {
	if !cfg.Enabled {
		logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(cfg.DBName)}
	if !cfg.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	if err := errors.Join(
		db.Callback().Create().After("gorm:create").Before("otel:after:create").Register("crm_trace:create", annotateSpan),
		db.Callback().Query().After("gorm:query").Before("otel:after:query").Register("crm_trace:query", annotateSpan),
		db.Callback().Update().After("gorm:update").Before("otel:after:update").Register("crm_trace:update", annotateSpan),
		db.Callback().Row().After("gorm:row").Before("otel:after:row").Register("crm_trace:row", annotateSpan),
	); err != nil {
		return err
	}

	logger.Info("Database tracing enabled",
		zap.String("db_name", cfg.DBName),
		zap.Bool("log_full_sql", cfg.LogFullSQL),
	)
	return nil
}

func annotateSpan(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
	span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	if errors.Is(db.Error, gorm.ErrDuplicatedKey) {
		span.SetAttributes(attribute.Bool("db.unique_violation", true))
	}
}
