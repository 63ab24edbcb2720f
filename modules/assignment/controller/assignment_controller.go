package controller

import (
	"event-registry/core/controller"
	"event-registry/core/errors"
	"event-registry/core/middleware"
	auditentity "event-registry/modules/audit/entity"
	auditservice "event-registry/modules/audit/service"
	"event-registry/modules/assignment/dto"
	"event-registry/modules/assignment/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AssignmentController handles assignment HTTP requests
type AssignmentController struct {
	controller.BaseController
	AssignmentService service.AssignmentServiceInterface
	Audit             auditservice.Recorder
}

// NewAssignmentController creates a new controller
func NewAssignmentController(svc service.AssignmentServiceInterface, audit auditservice.Recorder) *AssignmentController {
	return &AssignmentController{
		BaseController:    controller.NewBaseController(),
		AssignmentService: svc,
		Audit:             audit,
	}
}

func (c *AssignmentController) recordChange(ctx echo.Context, targetType auditentity.TargetType, change *dto.AssignmentChange) {
	if change == nil || !change.Changed {
		return
	}
	c.Audit.Record(ctx.Request().Context(), auditentity.AuditLog{
		UserName:   middleware.ActorName(ctx),
		Action:     auditentity.ActionAssign,
		TargetType: auditentity.TargetParticipant,
		TargetID:   change.ParticipantID,
		TargetName: change.ParticipantName,
		Changes: auditentity.Changes{
			"target_type": string(targetType),
			"from":        change.OldName,
			"to":          change.NewName,
		},
	})
}

func (c *AssignmentController) recordBulk(ctx echo.Context, targetType auditentity.TargetType, result *dto.BulkMoveResult) {
	if result == nil || result.Moved == 0 {
		return
	}
	c.Audit.Record(ctx.Request().Context(), auditentity.AuditLog{
		UserName:   middleware.ActorName(ctx),
		Action:     auditentity.ActionAssign,
		TargetType: targetType,
		TargetID:   result.TargetID,
		TargetName: result.TargetName,
		Changes: auditentity.Changes{
			"moved":             result.Moved,
			"already_in_target": result.AlreadyInTarget,
		},
	})
}

func parseIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// AssignGroup handles POST /assignments/group
// @Summary Assign a participant to a group
// @Tags Assignment
// @Accept json
// @Produce json
// @Param request body dto.AssignGroupRequest true "Assignment"
// @Success 200 {object} dto.AssignmentChange
// @Failure 404 {object} errors.AppError
// @Router /assignments/group [post]
func (c *AssignmentController) AssignGroup(ctx echo.Context) error {
	var req dto.AssignGroupRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	participantID, err := uuid.Parse(req.ParticipantID)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid participant ID")
	}
	groupID, err := uuid.Parse(req.GroupID)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid group ID")
	}

	result, appErr := c.AssignmentService.AssignToGroup(ctx.Request().Context(), participantID, groupID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	c.recordChange(ctx, auditentity.TargetGroup, result)
	return c.SuccessResponse(ctx, result, "Participant assigned to group")
}

// AssignRoom handles POST /assignments/room
// @Summary Assign a participant to a room
// @Tags Assignment
// @Accept json
// @Produce json
// @Param request body dto.AssignRoomRequest true "Assignment"
// @Success 200 {object} dto.AssignmentChange
// @Failure 409 {object} errors.AppError
// @Router /assignments/room [post]
func (c *AssignmentController) AssignRoom(ctx echo.Context) error {
	var req dto.AssignRoomRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	participantID, err := uuid.Parse(req.ParticipantID)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid participant ID")
	}
	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid room ID")
	}

	result, appErr := c.AssignmentService.AssignToRoom(ctx.Request().Context(), participantID, roomID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	c.recordChange(ctx, auditentity.TargetRoom, result)
	return c.SuccessResponse(ctx, result, "Participant assigned to room")
}

// RemoveGroup handles POST /assignments/group/remove
// @Summary Remove a participant from their group
// @Tags Assignment
// @Accept json
// @Produce json
// @Param request body dto.RemoveRequest true "Participant"
// @Success 200 {object} dto.AssignmentChange
// @Router /assignments/group/remove [post]
func (c *AssignmentController) RemoveGroup(ctx echo.Context) error {
	var req dto.RemoveRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	participantID, err := uuid.Parse(req.ParticipantID)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid participant ID")
	}

	result, appErr := c.AssignmentService.RemoveFromGroup(ctx.Request().Context(), participantID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	c.recordChange(ctx, auditentity.TargetGroup, result)
	return c.SuccessResponse(ctx, result, "Participant removed from group")
}

// RemoveRoom handles POST /assignments/room/remove
// @Summary Remove a participant from their room
// @Tags Assignment
// @Accept json
// @Produce json
// @Param request body dto.RemoveRequest true "Participant"
// @Success 200 {object} dto.AssignmentChange
// @Router /assignments/room/remove [post]
func (c *AssignmentController) RemoveRoom(ctx echo.Context) error {
	var req dto.RemoveRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	participantID, err := uuid.Parse(req.ParticipantID)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid participant ID")
	}

	result, appErr := c.AssignmentService.RemoveFromRoom(ctx.Request().Context(), participantID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	c.recordChange(ctx, auditentity.TargetRoom, result)
	return c.SuccessResponse(ctx, result, "Participant removed from room")
}

// BulkMoveGroup handles POST /assignments/group/bulk
// @Summary Move a set of participants into one group
// @Tags Assignment
// @Accept json
// @Produce json
// @Param request body dto.BulkMoveRequest true "Move"
// @Success 200 {object} dto.BulkMoveResult
// @Failure 404 {object} errors.AppError
// @Router /assignments/group/bulk [post]
func (c *AssignmentController) BulkMoveGroup(ctx echo.Context) error {
	var req dto.BulkMoveRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if len(req.ParticipantIDs) == 0 {
		return c.BadRequest(errors.ErrInvalidInput, "participant_ids must not be empty")
	}
	ids, err := parseIDs(req.ParticipantIDs)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid participant ID")
	}
	groupID, err := uuid.Parse(req.TargetID)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid group ID")
	}

	result, appErr := c.AssignmentService.BulkMoveToGroup(ctx.Request().Context(), ids, groupID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	c.recordBulk(ctx, auditentity.TargetGroup, result)
	return c.SuccessResponse(ctx, result, "Participants moved to group")
}

// BulkMoveRoom handles POST /assignments/room/bulk
// @Summary Move a set of participants into one room
// @Tags Assignment
// @Accept json
// @Produce json
// @Param request body dto.BulkMoveRequest true "Move"
// @Success 200 {object} dto.BulkMoveResult
// @Failure 409 {object} errors.AppError
// @Router /assignments/room/bulk [post]
func (c *AssignmentController) BulkMoveRoom(ctx echo.Context) error {
	var req dto.BulkMoveRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if len(req.ParticipantIDs) == 0 {
		return c.BadRequest(errors.ErrInvalidInput, "participant_ids must not be empty")
	}
	ids, err := parseIDs(req.ParticipantIDs)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid participant ID")
	}
	roomID, err := uuid.Parse(req.TargetID)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid room ID")
	}

	result, appErr := c.AssignmentService.BulkMoveToRoom(ctx.Request().Context(), ids, roomID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	c.recordBulk(ctx, auditentity.TargetRoom, result)
	return c.SuccessResponse(ctx, result, "Participants moved to room")
}
