//go:build integration

package integration

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/crm/backend/internal/application/crm"
	"github.com/crm/backend/internal/infrastructure/logger"
	"github.com/crm/backend/internal/infrastructure/persistence"
	crmgraphql "github.com/crm/backend/internal/interfaces/graphql"
	"github.com/crm/backend/internal/interfaces/http/handler"
	"github.com/crm/backend/internal/interfaces/http/middleware"
	"github.com/crm/backend/internal/interfaces/http/router"
	"github.com/crm/backend/tests/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// stack is the full HTTP surface over a containerised database
type stack struct {
	engine      *gin.Engine
	query       *crm.QueryService
	replenisher *crm.ReplenishmentEngine
	db          *TestDB
}

func newStack(t *testing.T) *stack {
	t.Helper()

	tdb := NewTestDB(t)
	log := zaptest.NewLogger(t)

	scope := persistence.NewGormTransactionScope(tdb.DB)
	customers, products, orders := persistence.NewCRMRepositories(tdb.DB)
	mutations := crm.NewMutationService(scope, crm.WithLogger(log))
	importer := crm.NewBulkImporter(scope, crm.WithLogger(log))
	query := crm.NewQueryService(customers, products, orders)
	replenisher := crm.NewReplenishmentEngine(scope, crm.WithReplenishLogger(log))

	engine := gin.New()
	engine.Use(middleware.RequestID(), logger.GinMiddleware(log), logger.Recovery(log))

	schema, err := crmgraphql.NewSchema(crmgraphql.NewResolver(mutations, importer, query, replenisher, log))
	require.NoError(t, err)
	crmgraphql.NewHandler(schema, log).RegisterRoutes(engine)

	router.NewRouter(engine).Register(
		handler.NewCustomerHandler(mutations, importer, query).Group(),
		handler.NewProductHandler(mutations, query).Group(),
		handler.NewOrderHandler(mutations, query).Group(),
		handler.NewInventoryHandler(replenisher).Group(),
		handler.NewReportHandler(query).Group(),
	).Setup()

	return &stack{engine: engine, query: query, replenisher: replenisher, db: tdb}
}

// graphqlResult is the GraphQL response body
type graphqlResult struct {
	Data   map[string]any `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (s *stack) graphql(t *testing.T, query string, variables map[string]any) graphqlResult {
	t.Helper()
	w := testutil.DoJSON(t, s.engine, http.MethodPost, "/graphql", map[string]any{
		"query":     query,
		"variables": variables,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res graphqlResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

// path walks nested maps in a GraphQL result
func path(v any, keys ...string) any {
	for _, k := range keys {
		m, ok := v.(map[string]any)
		if !ok {
			return nil
		}
		v = m[k]
	}
	return v
}
