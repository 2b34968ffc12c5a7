package services

import (
	"context"

	"competence-system/internal/entities"
	"competence-system/internal/repositories"
	"competence-system/pkg/types"
)

type ReportServiceInterface interface {
	AssessmentMatrix(ctx context.Context, filter types.Filter) ([]entities.Assessment, error)
}

type ReportService struct {
	assessmentRepo repositories.AssessmentRepositoryInterface
}

func NewReportService(assessmentRepo repositories.AssessmentRepositoryInterface) ReportServiceInterface {
	return &ReportService{assessmentRepo: assessmentRepo}
}

// AssessmentMatrix returns the full assessment set for export; filters
// apply, pagination does not.
func (s *ReportService) AssessmentMatrix(ctx context.Context, filter types.Filter) ([]entities.Assessment, error) {
	filter.WithPagination = false
	items, _, err := s.assessmentRepo.GetAssessments(ctx, filter)
	return items, err
}
