package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"competence-system/internal/entities"
	"competence-system/internal/services"
	"competence-system/pkg/utils"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

// ExportAssessments renders the full assessment matrix. JSON by default,
// xlsx when ?format=xlsx is passed.
func (c *ReportController) ExportAssessments(ctx echo.Context) error {
	// The unpaginated matrix can be large; bound the query instead of
	// letting it ride the request lifetime.
	reqCtx, cancel := utils.ContextWithTimeout(ctx, 60)
	defer cancel()

	filter := utils.ParseFilterFromQuery(ctx.QueryParams())
	format := strings.ToLower(ctx.QueryParam("format"))

	data, err := c.reportService.AssessmentMatrix(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if format == "xlsx" {
		return c.respondWithXLSX(ctx, data)
	}
	return utils.SuccessResponse(ctx, data, "", http.StatusOK)
}

var assessmentReportHeaders = []string{
	"ID", "Employee", "Skill", "Score", "Level", "Notes", "Assessed By", "Assessed At",
}

func assessmentToRow(item entities.Assessment) []interface{} {
	var employee, skill, notes string
	if item.EmployeeName != nil {
		employee = *item.EmployeeName
	}
	if item.SkillName != nil {
		skill = *item.SkillName
	}
	if item.Notes != nil {
		notes = *item.Notes
	}
	return []interface{}{
		item.ID, employee, skill, item.Score, item.Level, notes,
		item.AssessedBy, item.AssessedAt.Format("02.01.2006 15:04"),
	}
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, data []entities.Assessment) error {
	f := excelize.NewFile()
	sheet := "Assessments"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &assessmentReportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "H1", style)

	for i, item := range data {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := assessmentToRow(item)
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "B", "C", 28)
	f.SetColWidth(sheet, "F", "F", 40)
	f.SetColWidth(sheet, "H", "H", 20)

	fileName := fmt.Sprintf("assessments_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
