package router

import (
	"event-registry/core/middleware"
	"event-registry/modules/group/controller"

	"github.com/labstack/echo/v4"
)

// GroupRouter handles group routes
type GroupRouter struct {
	GroupController *controller.GroupController
}

// NewGroupRouter creates a new router
func NewGroupRouter(groupController *controller.GroupController) *GroupRouter {
	return &GroupRouter{GroupController: groupController}
}

// Setup registers group routes
func (r *GroupRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	groupRoutes := v1.Group("/groups")

	groupRoutes.POST("", r.GroupController.CreateOrGet)
	groupRoutes.GET("", r.GroupController.GetGroups)
	groupRoutes.GET("/:id", r.GroupController.GetGroup)
	groupRoutes.DELETE("/:id", r.GroupController.DeleteGroup)
}
