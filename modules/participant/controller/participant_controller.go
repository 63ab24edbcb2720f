package controller

import (
	"event-registry/core/controller"
	"event-registry/core/errors"
	"event-registry/core/middleware"
	"event-registry/core/params"
	auditentity "event-registry/modules/audit/entity"
	auditservice "event-registry/modules/audit/service"
	"event-registry/modules/participant/dto"
	"event-registry/modules/participant/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ParticipantController handles participant HTTP requests
type ParticipantController struct {
	controller.BaseController
	ParticipantService service.ParticipantServiceInterface
	Audit              auditservice.Recorder
}

// NewParticipantController creates a new controller
func NewParticipantController(svc service.ParticipantServiceInterface, audit auditservice.Recorder) *ParticipantController {
	return &ParticipantController{
		BaseController:     controller.NewBaseController(),
		ParticipantService: svc,
		Audit:              audit,
	}
}

func (c *ParticipantController) record(ctx echo.Context, action auditentity.AuditAction, id, name string, changes auditentity.Changes) {
	c.Audit.Record(ctx.Request().Context(), auditentity.AuditLog{
		UserName:   middleware.ActorName(ctx),
		Action:     action,
		TargetType: auditentity.TargetParticipant,
		TargetID:   id,
		TargetName: name,
		Changes:    changes,
	})
}

// Create handles POST /participants
// @Summary Register a participant
// @Tags Participant
// @Accept json
// @Produce json
// @Param request body dto.CreateParticipantRequest true "Participant details"
// @Success 200 {object} dto.ParticipantResponse
// @Failure 409 {object} errors.AppError
// @Router /participants [post]
func (c *ParticipantController) Create(ctx echo.Context) error {
	var req dto.CreateParticipantRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.ParticipantService.Create(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	c.record(ctx, auditentity.ActionCreate, result.ID, result.Name, nil)
	return c.SuccessResponse(ctx, result, "Participant created successfully")
}

// Get handles GET /participants/:id
// @Summary Get a participant with check-in history
// @Tags Participant
// @Produce json
// @Param id path string true "Participant ID"
// @Success 200 {object} dto.ParticipantResponse
// @Failure 404 {object} errors.AppError
// @Router /participants/{id} [get]
func (c *ParticipantController) Get(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid participant ID")
	}

	result, appErr := c.ParticipantService.GetByID(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// List handles GET /participants
// @Summary List participants
// @Tags Participant
// @Produce json
// @Success 200 {object} dto.PaginatedParticipantResponse
// @Router /participants [get]
func (c *ParticipantController) List(ctx echo.Context) error {
	result, appErr := c.ParticipantService.List(ctx.Request().Context(), params.FromContext(ctx))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// Update handles PUT /participants/:id
// @Summary Update participant scalar fields
// @Tags Participant
// @Accept json
// @Produce json
// @Param id path string true "Participant ID"
// @Param request body dto.UpdateParticipantRequest true "Fields to update"
// @Success 200 {object} dto.ParticipantResponse
// @Failure 404 {object} errors.AppError
// @Router /participants/{id} [put]
func (c *ParticipantController) Update(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid participant ID")
	}

	var req dto.UpdateParticipantRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.ParticipantService.Update(ctx.Request().Context(), id, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	c.record(ctx, auditentity.ActionUpdate, result.ID, result.Name, nil)
	return c.SuccessResponse(ctx, result, "Participant updated successfully")
}

// CheckIn handles POST /participants/:id/check-in
// @Summary Open an attendance record
// @Tags Participant
// @Produce json
// @Param id path string true "Participant ID"
// @Success 200 {object} dto.CheckInResponse
// @Failure 404 {object} errors.AppError
// @Router /participants/{id}/check-in [post]
func (c *ParticipantController) CheckIn(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid participant ID")
	}

	result, appErr := c.ParticipantService.CheckIn(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	c.record(ctx, auditentity.ActionCheckIn, id.String(), "", nil)
	return c.SuccessResponse(ctx, result, "Checked in")
}

// CheckOut handles POST /participants/:id/check-out
// @Summary Close the open attendance record
// @Tags Participant
// @Produce json
// @Param id path string true "Participant ID"
// @Success 200 {object} dto.CheckInResponse
// @Failure 404 {object} errors.AppError
// @Router /participants/{id}/check-out [post]
func (c *ParticipantController) CheckOut(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid participant ID")
	}

	result, appErr := c.ParticipantService.CheckOut(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	c.record(ctx, auditentity.ActionCheckOut, id.String(), "", nil)
	return c.SuccessResponse(ctx, result, "Checked out")
}
