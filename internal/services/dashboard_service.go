package services

import (
	"context"

	"go.uber.org/zap"

	"competence-system/internal/dto"
	"competence-system/internal/repositories"
)

type DashboardServiceInterface interface {
	GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error)
}

type DashboardService struct {
	repo   repositories.DashboardRepositoryInterface
	logger *zap.Logger
}

func NewDashboardService(repo repositories.DashboardRepositoryInterface, logger *zap.Logger) DashboardServiceInterface {
	return &DashboardService{repo: repo, logger: logger}
}

func (s *DashboardService) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	return s.repo.GetSummary(ctx)
}
