package participant

import (
	"event-registry/core/database"
	"event-registry/core/middleware"
	auditservice "event-registry/modules/audit/service"
	"event-registry/modules/participant/controller"
	"event-registry/modules/participant/repository"
	"event-registry/modules/participant/router"
	"event-registry/modules/participant/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the participant module and registers routes. Returns the
// repository so the importer and assignment engine can share it.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, feed service.FeedPublisher, audit auditservice.Recorder) repository.ParticipantRepositoryInterface {
	repo := repository.NewParticipantRepository(db)
	svc := service.NewParticipantService(repo, feed)
	ctrl := controller.NewParticipantController(svc, audit)
	rtr := router.NewParticipantRouter(ctrl)

	rtr.Setup(e, mw)
	return repo
}
