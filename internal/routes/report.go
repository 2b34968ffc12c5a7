package routes

import (
	"github.com/labstack/echo/v4"

	"competence-system/internal/authz"
	"competence-system/internal/controllers"
	"competence-system/pkg/middleware"
)

func runReportRouter(secureGroup *echo.Group, reportCtrl *controllers.ReportController, authMW *middleware.AuthMiddleware) {
	secureGroup.GET("/reports/assessments/export", reportCtrl.ExportAssessments, authMW.Authorize(authz.ReportsExport))
}
