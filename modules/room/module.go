package room

import (
	"event-registry/core/database"
	"event-registry/core/middleware"
	auditservice "event-registry/modules/audit/service"
	"event-registry/modules/room/controller"
	"event-registry/modules/room/repository"
	"event-registry/modules/room/router"
	"event-registry/modules/room/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the room module and registers routes. Returns the service
// so the importer can resolve rooms by number.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, feed service.FeedPublisher, audit auditservice.Recorder) service.RoomServiceInterface {
	repo := repository.NewRoomRepository(db)
	svc := service.NewRoomService(repo, feed)
	ctrl := controller.NewRoomController(svc, audit)
	rtr := router.NewRoomRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}
