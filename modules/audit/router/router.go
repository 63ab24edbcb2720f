package router

import (
	"event-registry/core/middleware"
	"event-registry/modules/audit/controller"

	"github.com/labstack/echo/v4"
)

// AuditRouter handles audit routes
type AuditRouter struct {
	AuditController *controller.AuditController
}

// NewAuditRouter creates a new router
func NewAuditRouter(auditController *controller.AuditController) *AuditRouter {
	return &AuditRouter{AuditController: auditController}
}

// Setup registers audit routes
func (r *AuditRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	v1.GET("/audit-logs", r.AuditController.ListRecent)
}
