package routes

import (
	"github.com/labstack/echo/v4"

	"competence-system/internal/authz"
	"competence-system/internal/controllers"
	"competence-system/pkg/middleware"
)

func runAssessmentRouter(secureGroup *echo.Group, assessmentCtrl *controllers.AssessmentController, authMW *middleware.AuthMiddleware) {
	// Listing and reads are open to every authenticated user; employees are
	// scoped to their own rows inside the service.
	secureGroup.GET("/assessments", assessmentCtrl.GetAssessments)
	secureGroup.GET("/assessments/:id", assessmentCtrl.FindAssessment)
	secureGroup.POST("/assessments", assessmentCtrl.CreateAssessment, authMW.Authorize(authz.AssessmentsCreate))
	secureGroup.PUT("/assessments/:id", assessmentCtrl.UpdateAssessment, authMW.Authorize(authz.AssessmentsUpdate))
}
