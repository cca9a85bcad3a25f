package handler

import (
	"github.com/crm/backend/internal/application/crm"
	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/crm/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
)

// ProductHandler handles product endpoints
type ProductHandler struct {
	BaseHandler
	mutations *crm.MutationService
	query     *crm.QueryService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(mutations *crm.MutationService, query *crm.QueryService) *ProductHandler {
	return &ProductHandler{mutations: mutations, query: query}
}

// Group returns the product routes
func (h *ProductHandler) Group() *router.DomainGroup {
	return router.NewDomainGroup("products", "/products").
		POST("", h.Create).
		GET("", h.List)
}

// Create handles POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}

	res, err := h.mutations.CreateProduct(c.Request.Context(), req.ToInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	respondResult(&h.BaseHandler, c, res, dto.ToProductResponse)
}

// List handles GET /products
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.query.Products(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, dto.ToProductResponses(products), len(products))
}
