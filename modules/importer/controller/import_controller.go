package controller

import (
	"io"

	"event-registry/core/controller"
	"event-registry/core/errors"
	"event-registry/core/middleware"
	auditentity "event-registry/modules/audit/entity"
	auditservice "event-registry/modules/audit/service"
	"event-registry/modules/importer/service"

	"github.com/labstack/echo/v4"
)

// ImportController handles bulk import HTTP requests
type ImportController struct {
	controller.BaseController
	ImportService service.ImportServiceInterface
	Audit         auditservice.Recorder
}

// NewImportController creates a new controller
func NewImportController(svc service.ImportServiceInterface, audit auditservice.Recorder) *ImportController {
	return &ImportController{
		BaseController: controller.NewBaseController(),
		ImportService:  svc,
		Audit:          audit,
	}
}

// Import handles POST /import
// @Summary Import participants from a CSV file
// @Tags Import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Success 200 {object} dto.ImportResult
// @Failure 400 {object} errors.AppError
// @Router /import [post]
func (c *ImportController) Import(ctx echo.Context) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Missing file upload")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Cannot open uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Cannot read uploaded file")
	}

	result, appErr := c.ImportService.Import(ctx.Request().Context(), fileHeader.Filename, data)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	c.Audit.Record(ctx.Request().Context(), auditentity.AuditLog{
		UserName:   middleware.ActorName(ctx),
		Action:     auditentity.ActionImport,
		TargetType: auditentity.TargetParticipant,
		TargetName: fileHeader.Filename,
		Changes: auditentity.Changes{
			"total_rows": result.TotalRows,
			"created":    result.Created,
			"updated":    result.Updated,
			"skipped":    result.Skipped,
		},
	})
	return c.SuccessResponse(ctx, result, "Import completed")
}
