package assignment

import (
	"event-registry/core/database"
	"event-registry/core/middleware"
	"event-registry/modules/assignment/controller"
	"event-registry/modules/assignment/repository"
	"event-registry/modules/assignment/router"
	"event-registry/modules/assignment/service"
	auditservice "event-registry/modules/audit/service"
	grouprepository "event-registry/modules/group/repository"
	roomrepository "event-registry/modules/room/repository"

	"github.com/labstack/echo/v4"
)

// Init initializes the assignment engine and registers routes. The engine
// shares the participant repository with the participant module; group and
// room lookups go through their own repositories over the same store.
// Returns the service so the importer can replace assignments.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, participants service.ParticipantReader, feed service.FeedPublisher, audit auditservice.Recorder) service.AssignmentServiceInterface {
	repo := repository.NewAssignmentRepository(db)
	groups := grouprepository.NewGroupRepository(db)
	rooms := roomrepository.NewRoomRepository(db)
	svc := service.NewAssignmentService(participants, groups, rooms, repo, feed)
	ctrl := controller.NewAssignmentController(svc, audit)
	rtr := router.NewAssignmentRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}
