package graphql

import (
	"net/http"

	"github.com/crm/backend/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"go.uber.org/zap"
)

// Request is the JSON body of a GraphQL call
type Request struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
	OperationName string         `json:"operationName"`
}

// Handler serves the schema over HTTP
type Handler struct {
	schema graphql.Schema
	logger *zap.Logger
}

// NewHandler creates a new Handler
func NewHandler(schema graphql.Schema, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{schema: schema, logger: log}
}

// RegisterRoutes mounts POST /graphql
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/graphql", h.Serve)
}

// Serve executes one GraphQL request. Query errors are reported in the
// result's errors list with status 200; only unreadable requests get 400.
func (h *Handler) Serve(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []gin.H{{"message": "invalid request body: " + err.Error()}}})
		return
	}
	if req.Query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []gin.H{{"message": "query is required"}}})
		return
	}

	ctx := logger.WithRequestID(c.Request.Context(), c.GetString("request_id"))
	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	})
	if result.HasErrors() {
		h.logger.Debug("GraphQL request returned errors",
			zap.String("operation", req.OperationName),
			zap.Int("errors", len(result.Errors)),
		)
	}
	c.JSON(http.StatusOK, result)
}
