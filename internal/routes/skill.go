package routes

import (
	"github.com/labstack/echo/v4"

	"competence-system/internal/authz"
	"competence-system/internal/controllers"
	"competence-system/pkg/middleware"
)

func runSkillRouter(secureGroup *echo.Group, skillCtrl *controllers.SkillController, authMW *middleware.AuthMiddleware) {
	secureGroup.GET("/skills", skillCtrl.GetSkills)
	secureGroup.GET("/skills/:id", skillCtrl.FindSkill)
	secureGroup.POST("/skills", skillCtrl.CreateSkill, authMW.Authorize(authz.SkillsCreate))
	secureGroup.PUT("/skills/:id", skillCtrl.UpdateSkill, authMW.Authorize(authz.SkillsUpdate))
	secureGroup.DELETE("/skills/:id", skillCtrl.DeleteSkill, authMW.Authorize(authz.SkillsDelete))
}
