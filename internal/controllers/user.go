package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"competence-system/internal/dto"
	"competence-system/internal/services"
	apperrors "competence-system/pkg/errors"
	"competence-system/pkg/types"
	"competence-system/pkg/utils"
)

type UserController struct {
	userService services.UserServiceInterface
	logger      *zap.Logger
}

func NewUserController(userService services.UserServiceInterface, logger *zap.Logger) *UserController {
	return &UserController{userService: userService, logger: logger}
}

type userListResponse struct {
	Items      []dto.UserPublicDTO `json:"items"`
	Pagination types.Pagination    `json:"pagination"`
}

func (ctrl *UserController) GetUsers(c echo.Context) error {
	filter := utils.ParseFilterFromQuery(c.QueryParams())

	users, total, err := ctrl.userService.GetUsers(c.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	items := make([]dto.UserPublicDTO, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserPublicDTO(&users[i]))
	}

	return utils.SuccessResponse(c, userListResponse{
		Items:      items,
		Pagination: types.Pagination{TotalCount: total, Page: filter.Page, Limit: filter.Limit},
	}, "", http.StatusOK)
}

func (ctrl *UserController) Me(c echo.Context) error {
	authUser, err := utils.GetAuthUser(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	user, err := ctrl.userService.FindUser(c.Request().Context(), authUser.ID)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, user, "", http.StatusOK)
}

func (ctrl *UserController) FindUser(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	user, err := ctrl.userService.FindUser(c.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, user, "", http.StatusOK)
}

func (ctrl *UserController) CreateUser(c echo.Context) error {
	var payload dto.CreateUserDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	created, err := ctrl.userService.CreateUser(c.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, created, "User created", http.StatusCreated)
}

func (ctrl *UserController) UpdateUser(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	var payload dto.UpdateUserDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	updated, err := ctrl.userService.UpdateUser(c.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, updated, "User updated", http.StatusOK)
}

func (ctrl *UserController) DeleteUser(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	actor, err := utils.GetAuthUser(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	if err := ctrl.userService.DeactivateUser(c.Request().Context(), actor, id); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, nil, "User deactivated", http.StatusOK)
}

func parseIDParam(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewValidationError("Valid ID is required", nil)
	}
	return id, nil
}
