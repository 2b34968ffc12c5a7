package routes

import (
	"github.com/labstack/echo/v4"

	"competence-system/internal/authz"
	"competence-system/internal/controllers"
	"competence-system/pkg/middleware"
)

func runAuthRouter(api *echo.Group, authCtrl *controllers.AuthController, authMW *middleware.AuthMiddleware) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authCtrl.Login)
		authGroup.POST("/activate", authCtrl.Activate)
		authGroup.POST("/logout", authCtrl.Logout, authMW.Auth)
		authGroup.GET("/verify", authCtrl.Verify, authMW.Auth)
		authGroup.GET("/me", authCtrl.Me, authMW.Auth)
		authGroup.POST("/change-password", authCtrl.ChangePassword, authMW.Auth)
		authGroup.POST("/reset/:userId", authCtrl.ResetPassword, authMW.Auth, authMW.Authorize(authz.PasswordsReset))
	}
}
