package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"competence-system/internal/dto"
	"competence-system/internal/entities"
	"competence-system/internal/repositories"
	apperrors "competence-system/pkg/errors"
	"competence-system/pkg/types"
)

type AssessmentServiceInterface interface {
	GetAssessments(ctx context.Context, actor *dto.AuthUser, filter types.Filter) ([]entities.Assessment, uint64, error)
	FindAssessment(ctx context.Context, actor *dto.AuthUser, id uint64) (*entities.Assessment, error)
	CreateAssessment(ctx context.Context, actor *dto.AuthUser, payload dto.CreateAssessmentDTO) (*entities.Assessment, error)
	UpdateAssessment(ctx context.Context, actor *dto.AuthUser, id uint64, payload dto.UpdateAssessmentDTO) (*entities.Assessment, error)
}

type AssessmentService struct {
	assessmentRepo repositories.AssessmentRepositoryInterface
	logger         *zap.Logger
}

func NewAssessmentService(assessmentRepo repositories.AssessmentRepositoryInterface, logger *zap.Logger) AssessmentServiceInterface {
	return &AssessmentService{assessmentRepo: assessmentRepo, logger: logger}
}

// GetAssessments narrows the listing to the caller's own rows when the
// caller is a plain employee; every other role sees the full matrix.
func (s *AssessmentService) GetAssessments(ctx context.Context, actor *dto.AuthUser, filter types.Filter) ([]entities.Assessment, uint64, error) {
	if actor.RoleType == entities.RoleEmployee {
		if filter.Filter == nil {
			filter.Filter = map[string]interface{}{}
		}
		filter.Filter["user_id"] = fmt.Sprintf("%d", actor.ID)
	}
	return s.assessmentRepo.GetAssessments(ctx, filter)
}

func (s *AssessmentService) FindAssessment(ctx context.Context, actor *dto.AuthUser, id uint64) (*entities.Assessment, error) {
	assessment, err := s.assessmentRepo.FindAssessmentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.RoleType == entities.RoleEmployee && assessment.UserID != actor.ID {
		return nil, apperrors.ErrForbidden
	}
	return assessment, nil
}

func (s *AssessmentService) CreateAssessment(ctx context.Context, actor *dto.AuthUser, payload dto.CreateAssessmentDTO) (*entities.Assessment, error) {
	created, err := s.assessmentRepo.CreateAssessment(ctx, &entities.Assessment{
		UserID:     payload.UserID,
		SkillID:    payload.SkillID,
		Score:      payload.Score,
		Level:      payload.Level,
		Notes:      payload.Notes,
		AssessedBy: actor.ID,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("assessment created",
		zap.Uint64("assessmentID", created.ID),
		zap.Uint64("userID", created.UserID),
		zap.Uint64("skillID", created.SkillID),
		zap.Uint64("assessedBy", actor.ID),
	)
	return created, nil
}

func (s *AssessmentService) UpdateAssessment(ctx context.Context, actor *dto.AuthUser, id uint64, payload dto.UpdateAssessmentDTO) (*entities.Assessment, error) {
	current, err := s.assessmentRepo.FindAssessmentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Score.Valid {
		score := payload.Score.Int
		if score < 0 || score > 100 {
			return nil, apperrors.NewValidationError("Score must be between 0 and 100", nil)
		}
		current.Score = score
	}
	if payload.Level != "" {
		current.Level = payload.Level
	}
	if payload.Notes != nil {
		current.Notes = payload.Notes
	}
	current.AssessedBy = actor.ID

	return s.assessmentRepo.UpdateAssessment(ctx, current)
}
