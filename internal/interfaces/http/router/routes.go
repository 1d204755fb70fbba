package router

import (
	"github.com/erp/supplierorders/internal/interfaces/http/handler"
)

// NewOrderRoutes mounts the order endpoints under /orders
func NewOrderRoutes(h *handler.OrderHandler) *Resource {
	return NewResource("/orders").
		POST("/build", h.Build).
		POST("/compile", h.Compile).
		POST("/sample/:target", h.Sample).
		POST("/lines/parse", h.ParseLines)
}

// NewABCRoutes mounts the ABC payload validator under /abc
func NewABCRoutes(h *handler.ABCHandler) *Resource {
	return NewResource("/abc").POST("/validate", h.Validate)
}

// NewSystemRoutes mounts the system endpoints under /system
func NewSystemRoutes(h *handler.SystemHandler) *Resource {
	return NewResource("/system").
		GET("/info", h.GetSystemInfo).
		GET("/ping", h.Ping)
}
