package routes

import (
	"github.com/labstack/echo/v4"

	"competence-system/internal/authz"
	"competence-system/internal/controllers"
	"competence-system/pkg/middleware"
)

func runUserRouter(secureGroup *echo.Group, userCtrl *controllers.UserController, authMW *middleware.AuthMiddleware) {
	secureGroup.GET("/users/me", userCtrl.Me)
	secureGroup.GET("/users", userCtrl.GetUsers, authMW.Authorize(authz.UsersList))
	secureGroup.GET("/users/:id", userCtrl.FindUser, authMW.Authorize(authz.UsersGet))
	secureGroup.POST("/users", userCtrl.CreateUser, authMW.Authorize(authz.UsersCreate))
	secureGroup.PUT("/users/:id", userCtrl.UpdateUser, authMW.Authorize(authz.UsersUpdate))
	secureGroup.DELETE("/users/:id", userCtrl.DeleteUser, authMW.Authorize(authz.UsersDelete))
}
