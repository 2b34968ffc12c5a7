package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"competence-system/internal/services"
	"competence-system/pkg/utils"
)

type DashboardController struct {
	dashboardService services.DashboardServiceInterface
	logger           *zap.Logger
}

func NewDashboardController(dashboardService services.DashboardServiceInterface, logger *zap.Logger) *DashboardController {
	return &DashboardController{dashboardService: dashboardService, logger: logger}
}

func (ctrl *DashboardController) GetSummary(c echo.Context) error {
	ctx, cancel := utils.ContextWithTimeout(c, 15)
	defer cancel()

	summary, err := ctrl.dashboardService.GetSummary(ctx)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, summary, "", http.StatusOK)
}
