package handler

import (
	"bytes"
	"encoding/json"

	"github.com/gin-gonic/gin"

	"github.com/erp/supplierorders/internal/domain/order"
	"github.com/erp/supplierorders/internal/infrastructure/logger"
	"github.com/erp/supplierorders/internal/interfaces/http/dto"
)

// ABCHandler exposes the ABC payload validator
type ABCHandler struct {
	BaseHandler
	service OrderService
}

// NewABCHandler creates a new ABCHandler
func NewABCHandler(service OrderService) *ABCHandler {
	return &ABCHandler{service: service}
}

// Validate repairs an ABC order payload and reports what changed.
// The body is the payload array itself.
// POST /abc/validate
func (h *ABCHandler) Validate(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		h.BadRequest(c, dto.ErrCodeBadRequest, "Failed to read request body")
		return
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var payload []any
	if err := dec.Decode(&payload); err != nil {
		h.BadRequest(c, dto.ErrCodeInvalidJSON, "ABC payload must be a JSON array")
		return
	}

	logger.SetTarget(c, order.TargetABC.String())
	result, err := h.service.ValidateABC(c.Request.Context(), payload)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
