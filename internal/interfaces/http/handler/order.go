package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	apporder "github.com/erp/supplierorders/internal/application/order"
	"github.com/erp/supplierorders/internal/domain/order"
	"github.com/erp/supplierorders/internal/infrastructure/logger"
	"github.com/erp/supplierorders/internal/infrastructure/supplier/abcvalidate"
	"github.com/erp/supplierorders/internal/interfaces/http/dto"
	"github.com/erp/supplierorders/internal/interfaces/http/middleware"
)

// OrderService is the application surface the order endpoints need
type OrderService interface {
	Build(ctx context.Context, sources ...any) apporder.BuildResult
	Compile(ctx context.Context, sources ...any) (*apporder.CompileResult, error)
	Sample(ctx context.Context, rawTarget string) (*apporder.CompileResult, error)
	ValidateABC(ctx context.Context, payload []any) (abcvalidate.Result, error)
}

// OrderHandler serves build, compile and sample requests
type OrderHandler struct {
	BaseHandler
	service OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(service OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// ParseLinesResponse is the result of parsing draft lines
type ParseLinesResponse struct {
	Lines  []order.DraftLine `json:"lines"`
	Errors []string          `json:"errors"`
}

// Build assembles a unified order without compiling it.
// POST /orders/build
func (h *OrderHandler) Build(c *gin.Context) {
	var req dto.SourcesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result := h.service.Build(c.Request.Context(), req.Sources...)
	if result.Order != nil {
		logger.SetTarget(c, result.Order.Target.String())
	}
	if !result.OK() {
		h.Rejected(c, result, result.Errors)
		return
	}
	h.Success(c, result)
}

// Compile builds an order and renders the supplier request.
// POST /orders/compile
func (h *OrderHandler) Compile(c *gin.Context) {
	var req dto.SourcesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.service.Compile(c.Request.Context(), req.Sources...)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	logger.SetTarget(c, result.Target.String())
	if !result.OK() {
		h.Rejected(c, result, result.Errors)
		return
	}
	h.Success(c, result)
}

// Sample compiles the built-in sample order for a target.
// POST /orders/sample/:target
func (h *OrderHandler) Sample(c *gin.Context) {
	var uri dto.TargetURI
	if err := c.ShouldBindUri(&uri); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.service.Sample(c.Request.Context(), uri.Target)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	logger.SetTarget(c, result.Target.String())
	h.Success(c, result)
}

// ParseLines parses draft lines serialized by the order entry grid.
// Per-item problems are reported, not rejected.
// POST /orders/lines/parse
func (h *OrderHandler) ParseLines(c *gin.Context) {
	var req dto.ParseLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	lines, errs := order.ParseLineItems(req.Payload)
	h.Success(c, ParseLinesResponse{Lines: lines, Errors: errs})
}
