package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/erp/supplierorders/internal/domain/order"
	"github.com/erp/supplierorders/internal/interfaces/http/dto"
)

// SystemHandler handles health and system endpoints
type SystemHandler struct {
	BaseHandler
	name      string
	version   string
	targets   []TargetInfo
	startTime time.Time
}

// TargetInfo names one supported supplier
type TargetInfo struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// NewSystemHandler creates a new SystemHandler. targets lists the suppliers
// the compiler registry serves.
func NewSystemHandler(name, version string, targets []order.Target) *SystemHandler {
	infos := make([]TargetInfo, 0, len(targets))
	for _, t := range targets {
		infos = append(infos, TargetInfo{Code: t.String(), Name: t.DisplayName()})
	}
	return &SystemHandler{
		name:      name,
		version:   version,
		targets:   infos,
		startTime: time.Now(),
	}
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string                `json:"name"`
	Version   string                `json:"version"`
	GoVersion string                `json:"go_version"`
	Uptime    string                `json:"uptime"`
	Targets   []TargetInfo          `json:"targets"`
	Units     []order.UnitOfMeasure `json:"units"`
}

// Health reports liveness
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetSystemInfo returns version, uptime, supported targets and the advisory
// unit vocabulary
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	h.Success(c, SystemInfoResponse{
		Name:      h.name,
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Targets:   h.targets,
		Units:     order.Units(),
	})
}

// PingResponse represents the ping response
type PingResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Ping is a simple responsiveness check
func (h *SystemHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(PingResponse{
		Message:   "pong",
		Timestamp: time.Now().Format(time.RFC3339),
	}))
}
