package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
}

func TestRouterWithAPIVersion(t *testing.T) {
	r := NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	customers := NewDomainGroup("customers", "/customers").
		GET("", func(c *gin.Context) { c.String(http.StatusOK, "list") }).
		POST("/bulk", func(c *gin.Context) { c.String(http.StatusCreated, "bulk") })
	reports := NewDomainGroup("reports", "/reports").
		GET("/summary", func(c *gin.Context) { c.String(http.StatusOK, "summary") })

	r.Register(customers, reports).Setup()

	tests := []struct {
		method string
		path   string
		status int
		body   string
	}{
		{http.MethodGet, "/api/v1/customers", http.StatusOK, "list"},
		{http.MethodPost, "/api/v1/customers/bulk", http.StatusCreated, "bulk"},
		{http.MethodGet, "/api/v1/reports/summary", http.StatusOK, "summary"},
		{http.MethodGet, "/customers", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}

func TestDomainGroupMiddleware(t *testing.T) {
	engine := gin.New()

	group := NewDomainGroup("orders", "/orders").
		Use(func(c *gin.Context) {
			c.Header("X-Group", "orders")
			c.Next()
		}).
		GET("", func(c *gin.Context) { c.Status(http.StatusOK) })

	NewRouter(engine).Register(group).Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "orders", w.Header().Get("X-Group"))
}

func TestDomainGroupRoutes(t *testing.T) {
	noop := func(*gin.Context) {}
	group := NewDomainGroup("inventory", "/inventory").
		POST("/replenish", noop).
		GET("", noop)

	assert.Equal(t, "inventory", group.Name())
	assert.Equal(t, "/inventory", group.Prefix())
	assert.Equal(t, []string{"POST /inventory/replenish", "GET /inventory"}, group.Routes())
}
