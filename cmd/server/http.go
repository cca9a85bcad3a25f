package main

import (
	"github.com/crm/backend/internal/application/crm"
	"github.com/crm/backend/internal/infrastructure/config"
	"github.com/crm/backend/internal/infrastructure/logger"
	"github.com/crm/backend/internal/infrastructure/persistence"
	crmgraphql "github.com/crm/backend/internal/interfaces/graphql"
	"github.com/crm/backend/internal/interfaces/http/handler"
	"github.com/crm/backend/internal/interfaces/http/middleware"
	"github.com/crm/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// services groups what the HTTP layer needs
type services struct {
	db          *persistence.Database
	mutations   *crm.MutationService
	importer    *crm.BulkImporter
	query       *crm.QueryService
	replenisher *crm.ReplenishmentEngine
}

// newEngine builds the gin engine. A nil meter disables request metrics.
func newEngine(cfg *config.Config, log *zap.Logger, meter metric.Meter, svc services) (*gin.Engine, error) {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	// RequestID runs first so the logger and spans can pick the id up
	httpMetrics, err := middleware.HTTPMetrics(meter)
	if err != nil {
		return nil, err
	}

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(httpMetrics)
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.CORS(cors))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	engine.GET("/health", handler.NewHealthHandler(cfg.App.Name, svc.db).Check)

	schema, err := crmgraphql.NewSchema(crmgraphql.NewResolver(
		svc.mutations, svc.importer, svc.query, svc.replenisher, log,
	))
	if err != nil {
		return nil, err
	}
	crmgraphql.NewHandler(schema, log).RegisterRoutes(engine)

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(
			handler.NewCustomerHandler(svc.mutations, svc.importer, svc.query).Group(),
			handler.NewProductHandler(svc.mutations, svc.query).Group(),
			handler.NewOrderHandler(svc.mutations, svc.query).Group(),
			handler.NewInventoryHandler(svc.replenisher).Group(),
			handler.NewReportHandler(svc.query).Group(),
		).
		Setup()

	return engine, nil
}
