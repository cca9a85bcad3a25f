package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/crm/backend/internal/application/crm"
	"github.com/crm/backend/internal/infrastructure/persistence"
	"github.com/crm/backend/internal/infrastructure/persistence/models"
	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/crm/backend/internal/interfaces/http/middleware"
	"github.com/crm/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testAPI is a gin engine serving the CRM routes over an in-memory database
type testAPI struct {
	engine *gin.Engine
}

// envelope mirrors dto.Response with a raw payload
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
	Meta    *dto.Meta       `json:"meta"`
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	db, err := persistence.Open(sqlite.Open(":memory:"), nil)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.All()...))

	log := zaptest.NewLogger(t)
	scope := persistence.NewGormTransactionScope(db)
	customers, products, orders := persistence.NewCRMRepositories(db)

	mutations := crm.NewMutationService(scope, crm.WithLogger(log))
	importer := crm.NewBulkImporter(scope, crm.WithLogger(log))
	query := crm.NewQueryService(customers, products, orders)
	engine := crm.NewReplenishmentEngine(scope, crm.WithReplenishLogger(log))

	g := gin.New()
	g.Use(middleware.RequestID())
	router.NewRouter(g).Register(
		NewCustomerHandler(mutations, importer, query).Group(),
		NewProductHandler(mutations, query).Group(),
		NewOrderHandler(mutations, query).Group(),
		NewInventoryHandler(engine).Group(),
		NewReportHandler(query).Group(),
	).Setup()

	return &testAPI{engine: g}
}

func (a *testAPI) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error { return p.err }

var errPingFailed = errors.New("connection refused")

func newHealthEngine(p Pinger) *gin.Engine {
	g := gin.New()
	g.GET("/health", NewHealthHandler("crm-test", p).Check)
	return g
}

func serve(g *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}
