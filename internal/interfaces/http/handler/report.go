package handler

import (
	"github.com/crm/backend/internal/application/crm"
	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/crm/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
)

// ReportHandler serves the CRM totals
type ReportHandler struct {
	BaseHandler
	query *crm.QueryService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(query *crm.QueryService) *ReportHandler {
	return &ReportHandler{query: query}
}

// Group returns the report routes
func (h *ReportHandler) Group() *router.DomainGroup {
	return router.NewDomainGroup("reports", "/reports").
		GET("/summary", h.Summary)
}

// Summary handles GET /reports/summary
func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.query.Summary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.ToSummaryResponse(summary))
}
