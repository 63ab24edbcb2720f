package group

import (
	"event-registry/core/database"
	"event-registry/core/middleware"
	auditservice "event-registry/modules/audit/service"
	"event-registry/modules/group/controller"
	"event-registry/modules/group/repository"
	"event-registry/modules/group/router"
	"event-registry/modules/group/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the group module and registers routes. Returns the
// service so the importer can resolve groups by name.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, feed service.FeedPublisher, audit auditservice.Recorder) service.GroupServiceInterface {
	repo := repository.NewGroupRepository(db)
	svc := service.NewGroupService(repo, feed)
	ctrl := controller.NewGroupController(svc, audit)
	rtr := router.NewGroupRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}
