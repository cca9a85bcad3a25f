package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crm/backend/internal/application/crm"
	"github.com/crm/backend/internal/infrastructure/cache"
	"github.com/crm/backend/internal/infrastructure/config"
	"github.com/crm/backend/internal/infrastructure/logger"
	"github.com/crm/backend/internal/infrastructure/persistence"
	"github.com/crm/backend/internal/infrastructure/storage"
	"github.com/crm/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	ctx := context.Background()
	telCfg := telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}

	// The log pipeline has to exist before zap so the bridge core can be teed in
	logProvider, err := telemetry.NewLoggerProvider(ctx, telCfg)
	if err != nil {
		panic("Failed to initialize OTEL logs: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}, logger.WithCore(logProvider.ZapCore(logger.ParseLevel(cfg.Log.Level))))
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting CRM backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telCfg, 30*time.Second, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	metrics, err := telemetry.NewCRMMetrics(meterProvider.Meter("crm"))
	if err != nil {
		log.Fatal("Failed to create CRM metrics", zap.Error(err))
	}

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:    cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL: cfg.Telemetry.DBLogFullSQL,
		DBName:     cfg.Database.DBName,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	var dbMetrics *telemetry.DBMetrics
	if meterProvider.IsEnabled() {
		dbMetrics, err = telemetry.RegisterDBMetrics(db.DB, meterProvider.Meter("db.client"), telemetry.DBMetricsConfig{
			Enabled:            cfg.Telemetry.DBMetricsEnabled,
			SlowQueryThreshold: logger.DefaultSlowQuery,
		}, log)
		if err != nil {
			log.Fatal("Failed to register database metrics", zap.Error(err))
		}
	}
	log.Info("Database connected successfully")

	// Replenishment lock
	locker, closeLocker, err := cache.NewLockerFactory(cfg.Redis, cache.WithLogger(log)).CreateLocker()
	if err != nil {
		log.Fatal("Failed to create replenishment lock", zap.Error(err))
	}

	// Services
	scope := persistence.NewGormTransactionScope(db.DB)
	customerRepo, productRepo, orderRepo := persistence.NewCRMRepositories(db.DB)

	mutations := crm.NewMutationService(scope, crm.WithLogger(log), crm.WithMetrics(metrics))
	importer := crm.NewBulkImporter(scope, crm.WithLogger(log), crm.WithMetrics(metrics))
	query := crm.NewQueryService(customerRepo, productRepo, orderRepo)
	replenisher := crm.NewReplenishmentEngine(scope,
		crm.WithLocker(locker, cfg.Inventory.LockTTL),
		crm.WithDefaults(cfg.Inventory.LowStockThreshold, cfg.Inventory.RestockIncrement),
		crm.WithReplenishLogger(log),
		crm.WithReplenishMetrics(metrics),
	)

	// Background jobs
	var jobs *jobRunner
	if cfg.Scheduler.Enabled {
		sink, err := storage.NewReportSink(ctx, cfg.Reports, log)
		if err != nil {
			log.Fatal("Failed to create report sink", zap.Error(err))
		}
		jobs, err = startJobs(ctx, cfg.Scheduler, crm.NewJobs(query, replenisher, sink, log), log)
		if err != nil {
			log.Fatal("Failed to start background jobs", zap.Error(err))
		}
	} else {
		log.Info("Scheduler disabled, background jobs will not run")
	}

	// HTTP
	var httpMeter metric.Meter
	if meterProvider.IsEnabled() && cfg.Telemetry.HTTPMetrics {
		httpMeter = meterProvider.Meter("http.server")
	}
	engine, err := newEngine(cfg, log, httpMeter, services{
		db:          db,
		mutations:   mutations,
		importer:    importer,
		query:       query,
		replenisher: replenisher,
	})
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if jobs != nil {
		jobs.stop(shutdownCtx)
	}
	if err := closeLocker(); err != nil {
		log.Warn("Error closing Redis client", zap.Error(err))
	}
	if err := dbMetrics.Stop(); err != nil {
		log.Warn("Error stopping database metrics", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		log.Error("Error closing database", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Error shutting down meter provider", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Error shutting down tracer provider", zap.Error(err))
	}
	log.Info("Server exited gracefully")
	if err := logProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Error shutting down logger provider", zap.Error(err))
	}
}
