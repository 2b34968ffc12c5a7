package services

import (
	"context"

	"go.uber.org/zap"

	"competence-system/internal/dto"
	"competence-system/internal/entities"
	"competence-system/internal/repositories"
	"competence-system/pkg/types"
)

type SkillServiceInterface interface {
	GetSkills(ctx context.Context, filter types.Filter) ([]entities.Skill, uint64, error)
	FindSkill(ctx context.Context, id uint64) (*entities.Skill, error)
	CreateSkill(ctx context.Context, payload dto.CreateSkillDTO) (*entities.Skill, error)
	UpdateSkill(ctx context.Context, id uint64, payload dto.UpdateSkillDTO) (*entities.Skill, error)
	DeleteSkill(ctx context.Context, id uint64) error
}

type SkillService struct {
	skillRepo repositories.SkillRepositoryInterface
	logger    *zap.Logger
}

func NewSkillService(skillRepo repositories.SkillRepositoryInterface, logger *zap.Logger) SkillServiceInterface {
	return &SkillService{skillRepo: skillRepo, logger: logger}
}

func (s *SkillService) GetSkills(ctx context.Context, filter types.Filter) ([]entities.Skill, uint64, error) {
	return s.skillRepo.GetSkills(ctx, filter)
}

func (s *SkillService) FindSkill(ctx context.Context, id uint64) (*entities.Skill, error) {
	return s.skillRepo.FindSkillByID(ctx, id)
}

func (s *SkillService) CreateSkill(ctx context.Context, payload dto.CreateSkillDTO) (*entities.Skill, error) {
	created, err := s.skillRepo.CreateSkill(ctx, &entities.Skill{
		Name:        payload.Name,
		Category:    payload.Category,
		Description: payload.Description,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("skill created", zap.Uint64("skillID", created.ID), zap.String("name", created.Name))
	return created, nil
}

func (s *SkillService) UpdateSkill(ctx context.Context, id uint64, payload dto.UpdateSkillDTO) (*entities.Skill, error) {
	current, err := s.skillRepo.FindSkillByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Name != "" {
		current.Name = payload.Name
	}
	if payload.Category != "" {
		current.Category = payload.Category
	}
	if payload.Description != nil {
		current.Description = payload.Description
	}

	return s.skillRepo.UpdateSkill(ctx, current)
}

func (s *SkillService) DeleteSkill(ctx context.Context, id uint64) error {
	if err := s.skillRepo.DeleteSkill(ctx, id); err != nil {
		return err
	}
	s.logger.Info("skill deleted", zap.Uint64("skillID", id))
	return nil
}
