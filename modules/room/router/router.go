package router

import (
	"event-registry/core/middleware"
	"event-registry/modules/room/controller"

	"github.com/labstack/echo/v4"
)

// RoomRouter handles room routes
type RoomRouter struct {
	RoomController *controller.RoomController
}

// NewRoomRouter creates a new router
func NewRoomRouter(roomController *controller.RoomController) *RoomRouter {
	return &RoomRouter{RoomController: roomController}
}

// Setup registers room routes
func (r *RoomRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	roomRoutes := v1.Group("/rooms")

	roomRoutes.POST("", r.RoomController.CreateOrGet)
	roomRoutes.GET("", r.RoomController.GetRooms)
	roomRoutes.GET("/:id", r.RoomController.GetRoom)
	roomRoutes.DELETE("/:id", r.RoomController.DeleteRoom)
}
