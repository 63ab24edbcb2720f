package router

import (
	"event-registry/core/middleware"
	"event-registry/modules/importer/controller"

	"github.com/labstack/echo/v4"
)

// ImportRouter handles import routes
type ImportRouter struct {
	ImportController *controller.ImportController
}

// NewImportRouter creates a new router
func NewImportRouter(importController *controller.ImportController) *ImportRouter {
	return &ImportRouter{ImportController: importController}
}

// Setup registers import routes
func (r *ImportRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	v1.POST("/import", r.ImportController.Import)
}
