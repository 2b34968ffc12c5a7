package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"competence-system/internal/dto"
	"competence-system/internal/entities"
	"competence-system/internal/repositories"
	"competence-system/pkg/config"
	apperrors "competence-system/pkg/errors"
	"competence-system/pkg/types"
	"competence-system/pkg/utils"
)

type UserServiceInterface interface {
	GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error)
	FindUser(ctx context.Context, id uint64) (*entities.User, error)
	CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*entities.User, error)
	UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO) (*entities.User, error)
	DeactivateUser(ctx context.Context, actor *dto.AuthUser, id uint64) error
}

type UserService struct {
	userRepo  repositories.UserRepositoryInterface
	cacheRepo repositories.CacheRepositoryInterface
	logger    *zap.Logger
	cfg       *config.AuthConfig
}

func NewUserService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
	cfg *config.AuthConfig,
) UserServiceInterface {
	return &UserService{
		userRepo:  userRepo,
		cacheRepo: cacheRepo,
		logger:    logger,
		cfg:       cfg,
	}
}

func (s *UserService) GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error) {
	return s.userRepo.GetUsers(ctx, filter)
}

func (s *UserService) FindUser(ctx context.Context, id uint64) (*entities.User, error) {
	return s.userRepo.FindUserByID(ctx, id)
}

// CreateUser adds an account in the not-yet-activated state: active, but
// with no password hash, so it cannot authenticate until activated. A
// one-time activation token is issued and logged.
// TODO: deliver the activation token by email once an SMTP collaborator exists.
func (s *UserService) CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*entities.User, error) {
	entity := &entities.User{
		EmployeeID: payload.EmployeeID,
		Email:      utils.NormalizeEmail(payload.Email),
		FirstName:  payload.FirstName,
		LastName:   payload.LastName,
		RoleType:   payload.RoleType,
		JobRole:    payload.JobRole,
		Department: payload.Department,
	}
	if payload.ManagerID.Valid {
		managerID := uint64(payload.ManagerID.Int)
		entity.ManagerID = &managerID
	}

	created, err := s.userRepo.CreateUser(ctx, entity)
	if err != nil {
		return nil, err
	}

	activationToken := uuid.New().String()
	cacheKey := fmt.Sprintf("activation:%s", activationToken)
	if err := s.cacheRepo.Set(ctx, cacheKey, created.ID, s.cfg.ActivationTokenTTL); err != nil {
		s.logger.Error("failed to store activation token", zap.Uint64("userID", created.ID), zap.Error(err))
	} else {
		s.logger.Info("activation token issued",
			zap.Uint64("userID", created.ID),
			zap.String("activation_token", activationToken),
		)
	}

	s.logger.Info("user created", zap.Uint64("userID", created.ID), zap.String("email", created.Email))
	return created, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO) (*entities.User, error) {
	current, err := s.userRepo.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.FirstName != "" {
		current.FirstName = payload.FirstName
	}
	if payload.LastName != "" {
		current.LastName = payload.LastName
	}
	if payload.RoleType != "" {
		if !entities.IsValidRole(payload.RoleType) {
			return nil, apperrors.NewValidationError("Role type must be one of: employee, manager, hr, admin, leader", nil)
		}
		current.RoleType = payload.RoleType
	}
	if payload.JobRole != nil {
		current.JobRole = payload.JobRole
	}
	if payload.Department != nil {
		current.Department = payload.Department
	}
	if payload.ManagerID.Valid {
		managerID := uint64(payload.ManagerID.Int)
		current.ManagerID = &managerID
	}
	if payload.IsActive.Valid {
		current.IsActive = payload.IsActive.Bool
	}

	updated, err := s.userRepo.UpdateUser(ctx, current)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user updated", zap.Uint64("userID", updated.ID))
	return updated, nil
}

// DeactivateUser is the deletion surrogate; rows are never physically
// removed. Takes effect on the target's very next gated request.
func (s *UserService) DeactivateUser(ctx context.Context, actor *dto.AuthUser, id uint64) error {
	if actor.ID == id {
		return apperrors.NewValidationError("You cannot deactivate your own account", nil)
	}
	if err := s.userRepo.DeactivateUser(ctx, id); err != nil {
		return err
	}
	s.logger.Info("user deactivated", zap.Uint64("userID", id), zap.Uint64("actorID", actor.ID))
	return nil
}
