// Package handler implements the REST endpoints of the CRM API.
package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/crm/backend/internal/application/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/logger"
	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/crm/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessList sends a full listing with its total
func (h *BaseHandler) SuccessList(c *gin.Context, data any, total int) {
	c.JSON(http.StatusOK, dto.NewListResponse(data, total))
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// InvalidJSON sends a 400 for a body that could not be decoded
func (h *BaseHandler) InvalidJSON(c *gin.Context, err error) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Invalid request body: "+err.Error())
}

// HandleError converts a service error to an HTTP response. Datastore
// failures are logged and reported without their cause.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) && domainErr.Kind != shared.KindDatastore {
		h.Error(c, dto.StatusForError(domainErr), domainErr.Code, domainErr.Message)
		return
	}

	logger.GetGinLogger(c).Error("request failed", zap.Error(err))

	if domainErr != nil {
		h.Error(c, dto.StatusForError(domainErr), domainErr.Code, domainErr.Message)
		return
	}
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred")
}

// bindOptionalJSON decodes the body into req. An empty body leaves req untouched.
func bindOptionalJSON(c *gin.Context, req any) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// respondResult writes a mutation outcome. A success is 201 with the entity;
// a failure keeps the envelope and maps its kind to a status.
func respondResult[T, R any](h *BaseHandler, c *gin.Context, res crm.Result[T], convert func(*T) R) {
	if !res.Success {
		resp := dto.NewErrorResponseWithRequestID(res.Err.Code, res.Message, middleware.GetRequestID(c))
		c.JSON(dto.StatusForError(res.Err), resp)
		return
	}

	var data any
	if res.Entity != nil {
		data = convert(res.Entity)
	}
	c.JSON(http.StatusCreated, dto.NewSuccessResponseWithMessage(data, res.Message))
}
