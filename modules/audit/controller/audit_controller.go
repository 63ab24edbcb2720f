package controller

import (
	"strconv"

	"event-registry/core/controller"
	"event-registry/modules/audit/service"

	"github.com/labstack/echo/v4"
)

// AuditController exposes the read-only audit trail.
type AuditController struct {
	controller.BaseController
	AuditService service.AuditServiceInterface
}

// NewAuditController creates a new controller
func NewAuditController(svc service.AuditServiceInterface) *AuditController {
	return &AuditController{
		BaseController: controller.NewBaseController(),
		AuditService:   svc,
	}
}

// ListRecent handles GET /audit-logs
// @Summary List recent audit entries
// @Tags Audit
// @Produce json
// @Param limit query int false "Max entries"
// @Success 200 {array} entity.AuditLog
// @Router /audit-logs [get]
func (c *AuditController) ListRecent(ctx echo.Context) error {
	limit, _ := strconv.Atoi(ctx.QueryParam("limit"))

	logs, appErr := c.AuditService.ListRecent(ctx.Request().Context(), limit)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, logs, "Success")
}
