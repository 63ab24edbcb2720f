package controller

import (
	"event-registry/core/controller"
	"event-registry/core/errors"
	"event-registry/core/middleware"
	"event-registry/core/params"
	auditentity "event-registry/modules/audit/entity"
	auditservice "event-registry/modules/audit/service"
	"event-registry/modules/group/dto"
	"event-registry/modules/group/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// GroupController handles group HTTP requests
type GroupController struct {
	controller.BaseController
	GroupService service.GroupServiceInterface
	Audit        auditservice.Recorder
}

// NewGroupController creates a new controller
func NewGroupController(svc service.GroupServiceInterface, audit auditservice.Recorder) *GroupController {
	return &GroupController{
		BaseController: controller.NewBaseController(),
		GroupService:   svc,
		Audit:          audit,
	}
}

// CreateOrGet handles POST /groups
// @Summary Create a group or return the existing one by name
// @Tags Group
// @Accept json
// @Produce json
// @Param request body dto.CreateOrGetGroupRequest true "Group attributes"
// @Success 200 {object} dto.CreateOrGetGroupResponse
// @Router /groups [post]
func (c *GroupController) CreateOrGet(ctx echo.Context) error {
	var req dto.CreateOrGetGroupRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.GroupService.CreateOrGet(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	if result.Created {
		c.Audit.Record(ctx.Request().Context(), auditentity.AuditLog{
			UserName:   middleware.ActorName(ctx),
			Action:     auditentity.ActionCreate,
			TargetType: auditentity.TargetGroup,
			TargetID:   result.Group.ID,
			TargetName: result.Group.Name,
		})
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GetGroup handles GET /groups/:id
// @Summary Get a group by ID
// @Tags Group
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} dto.GroupResponse
// @Failure 404 {object} errors.AppError
// @Router /groups/{id} [get]
func (c *GroupController) GetGroup(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid group ID")
	}

	result, appErr := c.GroupService.GetByID(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// GetGroups handles GET /groups
// @Summary List groups
// @Tags Group
// @Produce json
// @Success 200 {object} dto.PaginatedGroupResponse
// @Router /groups [get]
func (c *GroupController) GetGroups(ctx echo.Context) error {
	result, appErr := c.GroupService.List(ctx.Request().Context(), params.FromContext(ctx))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// DeleteGroup handles DELETE /groups/:id
// @Summary Delete a group, detaching all members
// @Tags Group
// @Param id path string true "Group ID"
// @Success 200 {object} controller.SuccessResponse
// @Failure 404 {object} errors.AppError
// @Router /groups/{id} [delete]
func (c *GroupController) DeleteGroup(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid group ID")
	}

	group, appErr := c.GroupService.GetByID(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	if appErr := c.GroupService.Delete(ctx.Request().Context(), id); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	c.Audit.Record(ctx.Request().Context(), auditentity.AuditLog{
		UserName:   middleware.ActorName(ctx),
		Action:     auditentity.ActionDelete,
		TargetType: auditentity.TargetGroup,
		TargetID:   group.ID,
		TargetName: group.Name,
	})

	return c.SuccessResponse(ctx, nil, "Group deleted successfully")
}
