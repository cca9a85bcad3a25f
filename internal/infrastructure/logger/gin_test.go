package logger

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newLoggedEngine returns an engine with a fixed request id and GinMiddleware
func newLoggedEngine(requestID string) (*gin.Engine, *observer.ObservedLogs) {
	core, recorded := observer.New(zapcore.DebugLevel)
	r := gin.New()
	if requestID != "" {
		r.Use(func(c *gin.Context) {
			c.Set("request_id", requestID)
			c.Next()
		})
	}
	r.Use(GinMiddleware(zap.New(core)))
	return r, recorded
}

func accessLog(t *testing.T, recorded *observer.ObservedLogs) observer.LoggedEntry {
	t.Helper()
	entries := recorded.FilterMessage("HTTP Request").All()
	require.Len(t, entries, 1)
	return entries[0]
}

func TestGinMiddleware_AccessLevels(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		status int
		want   zapcore.Level
	}{
		{"created", "/api/v1/customers", http.StatusCreated, zapcore.InfoLevel},
		{"conflict", "/api/v1/customers", http.StatusConflict, zapcore.WarnLevel},
		{"server error", "/api/v1/orders", http.StatusInternalServerError, zapcore.ErrorLevel},
		{"health ok", "/health", http.StatusOK, zapcore.DebugLevel},
		{"health degraded", "/health", http.StatusServiceUnavailable, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, recorded := newLoggedEngine("")
			r.Any(tt.path, func(c *gin.Context) { c.Status(tt.status) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, tt.path, nil))

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.want, accessLog(t, recorded).Level)
		})
	}
}

func TestGinMiddleware_Fields(t *testing.T) {
	r, recorded := newLoggedEngine("req-7")
	r.GET("/api/v1/products", func(c *gin.Context) {
		_ = c.Error(assert.AnError)
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products?limit=5", nil))

	fields := accessLog(t, recorded).ContextMap()
	assert.Equal(t, "req-7", fields["request_id"])
	assert.Equal(t, http.MethodGet, fields["method"])
	assert.Equal(t, "/api/v1/products", fields["path"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
	assert.Equal(t, "limit=5", fields["query"])
	assert.Contains(t, fields, "latency")
	assert.Contains(t, fields, "client_ip")
	assert.Contains(t, fields, "body_size")
	assert.Contains(t, fields, "errors")
}

func TestGinMiddleware_RequestLoggers(t *testing.T) {
	r, recorded := newLoggedEngine("req-8")
	r.GET("/api/v1/reports/summary", func(c *gin.Context) {
		assert.Equal(t, "req-8", GetRequestID(c.Request.Context()))
		GetGinLogger(c).Info("from gin")
		L(c.Request.Context()).Info("from ctx")
		c.Status(http.StatusOK)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/reports/summary", nil))

	for _, msg := range []string{"from gin", "from ctx"} {
		entries := recorded.FilterMessage(msg).All()
		require.Len(t, entries, 1, msg)
		fields := entries[0].ContextMap()
		assert.Equal(t, "req-8", fields["request_id"], msg)
		assert.Equal(t, "/api/v1/reports/summary", fields["path"], msg)

		ids := 0
		for _, f := range entries[0].Context {
			if f.Key == "request_id" {
				ids++
			}
		}
		assert.Equal(t, 1, ids, "%s: request_id must appear once", msg)
	}
}

func TestGetGinLogger_OutsideMiddleware(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	l := GetGinLogger(c)
	require.NotNil(t, l)
	assert.NotPanics(t, func() { l.Info("dropped") })
}

func TestRecovery(t *testing.T) {
	core, recorded := observer.New(zapcore.ErrorLevel)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("request_id", "req-panic")
		c.Next()
	})
	r.Use(Recovery(zap.New(core)))
	r.POST("/api/v1/orders", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	require.NotPanics(t, func() {
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/orders", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code      string `json:"code"`
			RequestID string `json:"request_id"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "ERR_INTERNAL", body.Error.Code)
	assert.Equal(t, "req-panic", body.Error.RequestID)

	entries := recorded.FilterMessage("Panic recovered").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "boom", entries[0].ContextMap()["panic"])
}
