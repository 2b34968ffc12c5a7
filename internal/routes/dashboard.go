package routes

import (
	"github.com/labstack/echo/v4"

	"competence-system/internal/controllers"
)

func runDashboardRouter(secureGroup *echo.Group, dashboardCtrl *controllers.DashboardController) {
	secureGroup.GET("/dashboard/summary", dashboardCtrl.GetSummary)
}
