package importer

import (
	"event-registry/core/config"
	"event-registry/core/middleware"
	assignmentservice "event-registry/modules/assignment/service"
	auditservice "event-registry/modules/audit/service"
	groupservice "event-registry/modules/group/service"
	"event-registry/modules/importer/controller"
	"event-registry/modules/importer/router"
	"event-registry/modules/importer/service"
	participantrepository "event-registry/modules/participant/repository"
	roomservice "event-registry/modules/room/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the importer module and registers routes. The importer
// writes through the participant repository and the other modules' services
// so every mutation keeps its counters and feed notifications.
func Init(
	e *echo.Echo,
	mw *middleware.Middleware,
	s3cfg config.S3Config,
	participants participantrepository.ParticipantRepositoryInterface,
	groups groupservice.GroupServiceInterface,
	rooms roomservice.RoomServiceInterface,
	engine assignmentservice.AssignmentServiceInterface,
	feed service.FeedPublisher,
	audit auditservice.Recorder,
) {
	svc := service.NewImportService(participants, groups, groups, rooms, rooms, engine, feed, service.NewS3Archiver(s3cfg))
	ctrl := controller.NewImportController(svc, audit)
	rtr := router.NewImportRouter(ctrl)

	rtr.Setup(e, mw)
}
