package handler

import (
	"github.com/crm/backend/internal/application/crm"
	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/crm/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
)

// CustomerHandler handles customer endpoints
type CustomerHandler struct {
	BaseHandler
	mutations *crm.MutationService
	importer  *crm.BulkImporter
	query     *crm.QueryService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(mutations *crm.MutationService, importer *crm.BulkImporter, query *crm.QueryService) *CustomerHandler {
	return &CustomerHandler{
		mutations: mutations,
		importer:  importer,
		query:     query,
	}
}

// Group returns the customer routes
func (h *CustomerHandler) Group() *router.DomainGroup {
	return router.NewDomainGroup("customers", "/customers").
		POST("", h.Create).
		POST("/bulk", h.BulkCreate).
		GET("", h.List)
}

// Create handles POST /customers
func (h *CustomerHandler) Create(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}

	res, err := h.mutations.CreateCustomer(c.Request.Context(), req.ToInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	respondResult(&h.BaseHandler, c, res, dto.ToCustomerResponse)
}

// BulkCreate handles POST /customers/bulk. Rejected items are listed in
// the response; the request only fails when the batch is aborted.
func (h *CustomerHandler) BulkCreate(c *gin.Context) {
	var req dto.BulkCreateCustomersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}

	res, err := h.importer.BulkCreateCustomers(c.Request.Context(), req.ToInputs())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.ToBulkResponse(res))
}

// List handles GET /customers
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.query.Customers(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, dto.ToCustomerResponses(customers), len(customers))
}
