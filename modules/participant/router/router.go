package router

import (
	"event-registry/core/middleware"
	"event-registry/modules/participant/controller"

	"github.com/labstack/echo/v4"
)

// ParticipantRouter handles participant routes
type ParticipantRouter struct {
	ParticipantController *controller.ParticipantController
}

// NewParticipantRouter creates a new router
func NewParticipantRouter(participantController *controller.ParticipantController) *ParticipantRouter {
	return &ParticipantRouter{ParticipantController: participantController}
}

// Setup registers participant routes
func (r *ParticipantRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	participantRoutes := v1.Group("/participants")

	participantRoutes.POST("", r.ParticipantController.Create)
	participantRoutes.GET("", r.ParticipantController.List)
	participantRoutes.GET("/:id", r.ParticipantController.Get)
	participantRoutes.PUT("/:id", r.ParticipantController.Update)
	participantRoutes.POST("/:id/check-in", r.ParticipantController.CheckIn)
	participantRoutes.POST("/:id/check-out", r.ParticipantController.CheckOut)
}
