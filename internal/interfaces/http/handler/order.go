package handler

import (
	"github.com/crm/backend/internal/application/crm"
	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/crm/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
)

// OrderHandler handles order endpoints
type OrderHandler struct {
	BaseHandler
	mutations *crm.MutationService
	query     *crm.QueryService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(mutations *crm.MutationService, query *crm.QueryService) *OrderHandler {
	return &OrderHandler{mutations: mutations, query: query}
}

// Group returns the order routes
func (h *OrderHandler) Group() *router.DomainGroup {
	return router.NewDomainGroup("orders", "/orders").
		POST("", h.Create).
		GET("", h.List)
}

// Create handles POST /orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}

	res, err := h.mutations.CreateOrder(c.Request.Context(), req.ToInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	respondResult(&h.BaseHandler, c, res, dto.ToOrderResponse)
}

// List handles GET /orders. Orders include their customer and products.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.query.Orders(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, dto.ToOrderResponses(orders), len(orders))
}
