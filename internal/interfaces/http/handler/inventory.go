package handler

import (
	"net/http"

	"github.com/crm/backend/internal/application/crm"
	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/crm/backend/internal/interfaces/http/middleware"
	"github.com/crm/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
)

// InventoryHandler exposes the low-stock replenishment
type InventoryHandler struct {
	BaseHandler
	engine *crm.ReplenishmentEngine
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(engine *crm.ReplenishmentEngine) *InventoryHandler {
	return &InventoryHandler{engine: engine}
}

// Group returns the inventory routes
func (h *InventoryHandler) Group() *router.DomainGroup {
	return router.NewDomainGroup("inventory", "/inventory").
		POST("/replenish", h.Replenish)
}

// Replenish handles POST /inventory/replenish. The body is optional;
// omitted fields fall back to the configured defaults.
func (h *InventoryHandler) Replenish(c *gin.Context) {
	var req dto.ReplenishRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		h.InvalidJSON(c, err)
		return
	}

	res, err := h.engine.Replenish(c.Request.Context(), req.ToInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if !res.Success {
		c.JSON(dto.StatusForError(res.Err),
			dto.NewErrorResponseWithRequestID(res.Err.Code, res.Message, middleware.GetRequestID(c)))
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMessage(dto.ToReplenishResponse(res), res.Message))
}
