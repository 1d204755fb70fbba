package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/erp/supplierorders/internal/domain/order"
	"github.com/erp/supplierorders/internal/domain/shared"
	"github.com/erp/supplierorders/internal/infrastructure/logger"
	"github.com/erp/supplierorders/internal/interfaces/http/dto"
	"github.com/erp/supplierorders/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, code, message string) {
	h.Error(c, http.StatusBadRequest, code, message)
}

// Rejected sends a 422 carrying data and the business validation errors
func (h *BaseHandler) Rejected(c *gin.Context, data any, errs []string) {
	c.JSON(http.StatusUnprocessableEntity, dto.NewRejectedResponse(
		data,
		shared.ErrValidationFailed.Code,
		shared.ErrValidationFailed.Message,
		middleware.GetRequestID(c),
		errs,
	))
}

// HandleError converts service errors to HTTP responses
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)

	// A precondition failure means an unbuilt order reached a compiler
	if errors.Is(err, order.ErrPrecondition) {
		logger.L(c.Request.Context()).Error("compile precondition violated", zap.Error(err))
		h.Error(c, http.StatusInternalServerError, shared.ErrPreconditionFailed.Code, err.Error())
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		h.Error(c, dto.GetHTTPStatus(code), code, err.Error())
		return
	}

	logger.L(c.Request.Context()).Error("unexpected handler error", zap.Error(err))
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred")
}
