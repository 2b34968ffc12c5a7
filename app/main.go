package main

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"competence-system/internal/routes"
	"competence-system/pkg/config"
	"competence-system/pkg/customvalidator"
	"competence-system/pkg/database/postgresql"
	apperrors "competence-system/pkg/errors"
	applogger "competence-system/pkg/logger"
	appmw "competence-system/pkg/middleware"
	"competence-system/pkg/service"
	"competence-system/pkg/utils"
)

func main() {
	cfg := config.New()

	e := echo.New()
	e.HideBanner = true
	logger := applogger.NewLogger()
	defer logger.Sync()

	e.HTTPErrorHandler = utils.ErrorHandler(logger)

	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("panic recovered",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				utils.ErrorResponse(c, apperrors.NewInternalError(err), logger)
			}
			return err
		},
	}))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		ExposeHeaders: []string{"Content-Disposition"},
	}))
	e.Use(appmw.InjectEnv(cfg.IsDevelopment()))
	e.Use(appmw.CaptureBody())
	e.Use(appmw.RequestLogger(logger))

	v := validator.New()
	if err := customvalidator.RegisterCustomValidations(v); err != nil {
		logger.Fatal("failed to register custom validation rules", zap.Error(err))
	}
	e.Validator = utils.NewValidator(v)

	if err := postgresql.Migrate(cfg.Postgres.DSN); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}
	dbConn, err := postgresql.Connect(context.Background(), cfg.Postgres.DSN)
	if err != nil {
		logger.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer dbConn.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
	}

	tokenService := service.NewTokenService(cfg.JWT.SecretKey, cfg.JWT.TokenTTL)

	routes.InitRouter(e, dbConn, redisClient, tokenService, logger, cfg)

	logger.Info("starting server", zap.String("port", cfg.Server.Port), zap.String("env", cfg.Server.Env))
	if err := e.Start(":" + cfg.Server.Port); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
