package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"competence-system/internal/dto"
	"competence-system/internal/services"
	apperrors "competence-system/pkg/errors"
	"competence-system/pkg/service"
	"competence-system/pkg/utils"
)

type AuthController struct {
	authService  services.AuthServiceInterface
	tokenService service.TokenService
	logger       *zap.Logger
}

func NewAuthController(
	authService services.AuthServiceInterface,
	tokenService service.TokenService,
	logger *zap.Logger,
) *AuthController {
	return &AuthController{
		authService:  authService,
		tokenService: tokenService,
		logger:       logger,
	}
}

func (ctrl *AuthController) Login(c echo.Context) error {
	var payload dto.LoginDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	user, err := ctrl.authService.Login(c.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	token, err := ctrl.tokenService.Generate(user.ID, user.Email, user.RoleType, user.EmployeeID)
	if err != nil {
		ctrl.logger.Error("failed to generate token", zap.Uint64("userID", user.ID), zap.Error(err))
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	return c.JSON(http.StatusOK, dto.LoginResponseDTO{
		Success:   true,
		Message:   "Login successful",
		Token:     token,
		User:      dto.NewUserPublicDTO(user),
		ExpiresIn: ctrl.tokenService.TokenTTL().String(),
	})
}

// Logout exists for audit symmetry only; tokens are stateless and simply
// age out. Immediate revocation is handled by deactivation.
func (ctrl *AuthController) Logout(c echo.Context) error {
	if user, err := utils.GetAuthUser(c.Request().Context()); err == nil {
		ctrl.logger.Info("user logged out", zap.Uint64("userID", user.ID), zap.String("email", user.Email))
	}
	return utils.SuccessResponse(c, nil, "Logged out successfully", http.StatusOK)
}

// Verify lets a client proactively check token validity; the gate has
// already decoded the token and re-resolved the caller by the time this
// handler runs.
func (ctrl *AuthController) Verify(c echo.Context) error {
	user, err := utils.GetAuthUser(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, user, "Token is valid", http.StatusOK)
}

func (ctrl *AuthController) Me(c echo.Context) error {
	authUser, err := utils.GetAuthUser(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	user, err := ctrl.authService.GetUserByID(c.Request().Context(), authUser.ID)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, dto.NewUserPublicDTO(user), "", http.StatusOK)
}

func (ctrl *AuthController) ResetPassword(c echo.Context) error {
	targetID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil || targetID == 0 {
		return utils.ErrorResponse(c, apperrors.NewValidationError("Valid user ID is required", nil), ctrl.logger)
	}

	var payload dto.ResetPasswordDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	actor, err := utils.GetAuthUser(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	target, err := ctrl.authService.ResetPassword(c.Request().Context(), actor, targetID, payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, dto.NewUserPublicDTO(target), "Password reset successfully", http.StatusOK)
}

func (ctrl *AuthController) ChangePassword(c echo.Context) error {
	var payload dto.ChangePasswordDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	actor, err := utils.GetAuthUser(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	if err := ctrl.authService.ChangePassword(c.Request().Context(), actor.ID, payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, nil, "Password changed successfully", http.StatusOK)
}

func (ctrl *AuthController) Activate(c echo.Context) error {
	var payload dto.ActivateAccountDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	if err := ctrl.authService.ActivateAccount(c.Request().Context(), payload.Token, payload.NewPassword); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, nil, "Account activated successfully", http.StatusOK)
}
