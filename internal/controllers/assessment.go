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

type AssessmentController struct {
	assessmentService services.AssessmentServiceInterface
	logger            *zap.Logger
}

func NewAssessmentController(assessmentService services.AssessmentServiceInterface, logger *zap.Logger) *AssessmentController {
	return &AssessmentController{assessmentService: assessmentService, logger: logger}
}

type assessmentListResponse struct {
	Items      []entities.Assessment `json:"items"`
	Pagination types.Pagination      `json:"pagination"`
}

func (ctrl *AssessmentController) GetAssessments(c echo.Context) error {
	actor, err := utils.GetAuthUser(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	filter := utils.ParseFilterFromQuery(c.QueryParams())
	assessments, total, err := ctrl.assessmentService.GetAssessments(c.Request().Context(), actor, filter)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	return utils.SuccessResponse(c, assessmentListResponse{
		Items:      assessments,
		Pagination: types.Pagination{TotalCount: total, Page: filter.Page, Limit: filter.Limit},
	}, "", http.StatusOK)
}

func (ctrl *AssessmentController) FindAssessment(c echo.Context) error {
	actor, err := utils.GetAuthUser(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	id, err := parseIDParam(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	assessment, err := ctrl.assessmentService.FindAssessment(c.Request().Context(), actor, id)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, assessment, "", http.StatusOK)
}

func (ctrl *AssessmentController) CreateAssessment(c echo.Context) error {
	actor, err := utils.GetAuthUser(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	var payload dto.CreateAssessmentDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	created, err := ctrl.assessmentService.CreateAssessment(c.Request().Context(), actor, payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, created, "Assessment created", http.StatusCreated)
}

func (ctrl *AssessmentController) UpdateAssessment(c echo.Context) error {
	actor, err := utils.GetAuthUser(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	id, err := parseIDParam(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	var payload dto.UpdateAssessmentDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	updated, err := ctrl.assessmentService.UpdateAssessment(c.Request().Context(), actor, id, payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, updated, "Assessment updated", http.StatusOK)
}
