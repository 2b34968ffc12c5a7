package routes

import (
	"context"
	"net/http"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"competence-system/internal/controllers"
	"competence-system/internal/repositories"
	"competence-system/internal/services"
	"competence-system/pkg/config"
	"competence-system/pkg/middleware"
	"competence-system/pkg/service"
)

// InitRouter assembles the dependency graph and mounts every route group
// under /api. Repositories and services are created once here and shared.
func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, tokenService service.TokenService, logger *zap.Logger, cfg *config.Config) {
	api := e.Group("/api")

	// repositories
	userRepo := repositories.NewUserRepository(dbConn, logger)
	skillRepo := repositories.NewSkillRepository(dbConn, logger)
	assessmentRepo := repositories.NewAssessmentRepository(dbConn, logger)
	dashboardRepo := repositories.NewDashboardRepository(dbConn, logger)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// services
	authService := services.NewAuthService(userRepo, cacheRepo, logger, &cfg.Auth)
	if err := authService.EnsureBootstrapAdmin(context.Background()); err != nil {
		logger.Error("bootstrap admin provisioning failed", zap.Error(err))
	}
	userService := services.NewUserService(userRepo, cacheRepo, logger, &cfg.Auth)
	skillService := services.NewSkillService(skillRepo, logger)
	assessmentService := services.NewAssessmentService(assessmentRepo, logger)
	dashboardService := services.NewDashboardService(dashboardRepo, logger)
	reportService := services.NewReportService(assessmentRepo)

	// controllers
	authCtrl := controllers.NewAuthController(authService, tokenService, logger)
	userCtrl := controllers.NewUserController(userService, logger)
	skillCtrl := controllers.NewSkillController(skillService, logger)
	assessmentCtrl := controllers.NewAssessmentController(assessmentService, logger)
	dashboardCtrl := controllers.NewDashboardController(dashboardService, logger)
	reportCtrl := controllers.NewReportController(reportService, logger)

	authMW := middleware.NewAuthMiddleware(tokenService, userRepo, logger)
	secureGroup := api.Group("", authMW.Auth)

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"success": true,
			"status":  "ok",
		})
	})

	runAuthRouter(api, authCtrl, authMW)
	runUserRouter(secureGroup, userCtrl, authMW)
	runSkillRouter(secureGroup, skillCtrl, authMW)
	runAssessmentRouter(secureGroup, assessmentCtrl, authMW)
	runDashboardRouter(secureGroup, dashboardCtrl)
	runReportRouter(secureGroup, reportCtrl, authMW)

	logger.Info("routes initialized")
}
