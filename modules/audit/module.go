package audit

import (
	"event-registry/core/constants"
	"event-registry/core/database"
	"event-registry/core/middleware"
	"event-registry/modules/audit/controller"
	"event-registry/modules/audit/repository"
	"event-registry/modules/audit/router"
	"event-registry/modules/audit/service"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
)

// Init initializes the audit module: HTTP routes, the enqueue-side service,
// and the background write handler. Returns the service so other modules'
// controllers can record entries.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, client *asynq.Client, mux *asynq.ServeMux) service.AuditServiceInterface {
	repo := repository.NewAuditRepository(db)
	svc := service.NewAuditService(client, repo)
	ctrl := controller.NewAuditController(svc)
	rtr := router.NewAuditRouter(ctrl)

	rtr.Setup(e, mw)
	mux.HandleFunc(constants.TaskAuditWrite, svc.HandleWriteTask)

	return svc
}
