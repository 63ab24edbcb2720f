package router

import (
	"event-registry/core/middleware"
	"event-registry/modules/assignment/controller"

	"github.com/labstack/echo/v4"
)

// AssignmentRouter handles assignment routes
type AssignmentRouter struct {
	AssignmentController *controller.AssignmentController
}

// NewAssignmentRouter creates a new router
func NewAssignmentRouter(assignmentController *controller.AssignmentController) *AssignmentRouter {
	return &AssignmentRouter{AssignmentController: assignmentController}
}

// Setup registers assignment routes
func (r *AssignmentRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	assignmentRoutes := v1.Group("/assignments")

	assignmentRoutes.POST("/group", r.AssignmentController.AssignGroup)
	assignmentRoutes.POST("/group/remove", r.AssignmentController.RemoveGroup)
	assignmentRoutes.POST("/group/bulk", r.AssignmentController.BulkMoveGroup)
	assignmentRoutes.POST("/room", r.AssignmentController.AssignRoom)
	assignmentRoutes.POST("/room/remove", r.AssignmentController.RemoveRoom)
	assignmentRoutes.POST("/room/bulk", r.AssignmentController.BulkMoveRoom)
}
