package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"competence-system/internal/dto"
	"competence-system/internal/entities"
	"competence-system/internal/services"
	apperrors "competence-system/pkg/errors"
	"competence-system/pkg/types"
	"competence-system/pkg/utils"
)

type SkillController struct {
	skillService services.SkillServiceInterface
	logger       *zap.Logger
}

func NewSkillController(skillService services.SkillServiceInterface, logger *zap.Logger) *SkillController {
	return &SkillController{skillService: skillService, logger: logger}
}

type skillListResponse struct {
	Items      []entities.Skill `json:"items"`
	Pagination types.Pagination `json:"pagination"`
}

func (ctrl *SkillController) GetSkills(c echo.Context) error {
	filter := utils.ParseFilterFromQuery(c.QueryParams())

	skills, total, err := ctrl.skillService.GetSkills(c.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	return utils.SuccessResponse(c, skillListResponse{
		Items:      skills,
		Pagination: types.Pagination{TotalCount: total, Page: filter.Page, Limit: filter.Limit},
	}, "", http.StatusOK)
}

func (ctrl *SkillController) FindSkill(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	skill, err := ctrl.skillService.FindSkill(c.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, skill, "", http.StatusOK)
}

func (ctrl *SkillController) CreateSkill(c echo.Context) error {
	var payload dto.CreateSkillDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	created, err := ctrl.skillService.CreateSkill(c.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, created, "Skill created", http.StatusCreated)
}

func (ctrl *SkillController) UpdateSkill(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	var payload dto.UpdateSkillDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	updated, err := ctrl.skillService.UpdateSkill(c.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, updated, "Skill updated", http.StatusOK)
}

func (ctrl *SkillController) DeleteSkill(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	if err := ctrl.skillService.DeleteSkill(c.Request().Context(), id); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, nil, "Skill deleted", http.StatusOK)
}
