package controller

import (
	"event-registry/core/controller"
	"event-registry/core/errors"
	"event-registry/core/middleware"
	"event-registry/core/params"
	auditentity "event-registry/modules/audit/entity"
	auditservice "event-registry/modules/audit/service"
	"event-registry/modules/room/dto"
	"event-registry/modules/room/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RoomController handles room HTTP requests
type RoomController struct {
	controller.BaseController
	RoomService service.RoomServiceInterface
	Audit       auditservice.Recorder
}

// NewRoomController creates a new controller
func NewRoomController(svc service.RoomServiceInterface, audit auditservice.Recorder) *RoomController {
	return &RoomController{
		BaseController: controller.NewBaseController(),
		RoomService:    svc,
		Audit:          audit,
	}
}

// CreateOrGet handles POST /rooms
// @Summary Create a room or return the existing one by number
// @Tags Room
// @Accept json
// @Produce json
// @Param request body dto.CreateOrGetRoomRequest true "Room attributes"
// @Success 200 {object} dto.CreateOrGetRoomResponse
// @Router /rooms [post]
func (c *RoomController) CreateOrGet(ctx echo.Context) error {
	var req dto.CreateOrGetRoomRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.RoomService.CreateOrGet(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	if result.Created {
		c.Audit.Record(ctx.Request().Context(), auditentity.AuditLog{
			UserName:   middleware.ActorName(ctx),
			Action:     auditentity.ActionCreate,
			TargetType: auditentity.TargetRoom,
			TargetID:   result.Room.ID,
			TargetName: result.Room.RoomNumber,
		})
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GetRoom handles GET /rooms/:id
// @Summary Get a room by ID
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} dto.RoomResponse
// @Failure 404 {object} errors.AppError
// @Router /rooms/{id} [get]
func (c *RoomController) GetRoom(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid room ID")
	}

	result, appErr := c.RoomService.GetByID(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// GetRooms handles GET /rooms
// @Summary List rooms
// @Tags Room
// @Produce json
// @Success 200 {object} dto.PaginatedRoomResponse
// @Router /rooms [get]
func (c *RoomController) GetRooms(ctx echo.Context) error {
	result, appErr := c.RoomService.List(ctx.Request().Context(), params.FromContext(ctx))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// DeleteRoom handles DELETE /rooms/:id
// @Summary Delete a room, detaching all occupants
// @Tags Room
// @Param id path string true "Room ID"
// @Success 200 {object} controller.SuccessResponse
// @Failure 404 {object} errors.AppError
// @Router /rooms/{id} [delete]
func (c *RoomController) DeleteRoom(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid room ID")
	}

	room, appErr := c.RoomService.GetByID(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	if appErr := c.RoomService.Delete(ctx.Request().Context(), id); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	c.Audit.Record(ctx.Request().Context(), auditentity.AuditLog{
		UserName:   middleware.ActorName(ctx),
		Action:     auditentity.ActionDelete,
		TargetType: auditentity.TargetRoom,
		TargetID:   room.ID,
		TargetName: room.RoomNumber,
	})

	return c.SuccessResponse(ctx, nil, "Room deleted successfully")
}
