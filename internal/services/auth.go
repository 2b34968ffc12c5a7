package services

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"competence-system/internal/dto"
	"competence-system/internal/entities"
	"competence-system/internal/repositories"
	"competence-system/pkg/config"
	apperrors "competence-system/pkg/errors"
	"competence-system/pkg/utils"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*entities.User, error)
	ResetPassword(ctx context.Context, actor *dto.AuthUser, targetID uint64, payload dto.ResetPasswordDTO) (*entities.User, error)
	ChangePassword(ctx context.Context, actorID uint64, payload dto.ChangePasswordDTO) error
	ActivateAccount(ctx context.Context, token, newPassword string) error
	GetUserByID(ctx context.Context, userID uint64) (*entities.User, error)
	EnsureBootstrapAdmin(ctx context.Context) error
}

type AuthService struct {
	userRepo  repositories.UserRepositoryInterface
	cacheRepo repositories.CacheRepositoryInterface
	logger    *zap.Logger
	cfg       *config.AuthConfig
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
	cfg *config.AuthConfig,
) AuthServiceInterface {
	return &AuthService{
		userRepo:  userRepo,
		cacheRepo: cacheRepo,
		logger:    logger,
		cfg:       cfg,
	}
}

// Login validates credentials and records the login time. Every deny path
// returns the same ErrInvalidCredentials; the precise reason stays in the
// server-side log so responses cannot be used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*entities.User, error) {
	email := utils.NormalizeEmail(payload.Email)
	logger := s.logger.With(zap.String("email", email))

	if err := s.checkLockout(ctx, email); err != nil {
		logger.Warn("login rejected: account temporarily locked")
		return nil, err
	}

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		logger.Warn("login failed: user not found")
		s.handleFailedLoginAttempt(ctx, email)
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		logger.Warn("login failed: account deactivated", zap.Uint64("userID", user.ID))
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.HasPassword() {
		logger.Warn("login failed: account not activated", zap.Uint64("userID", user.ID))
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(*user.PasswordHash, payload.Password); err != nil {
		logger.Warn("login failed: password mismatch", zap.Uint64("userID", user.ID))
		s.handleFailedLoginAttempt(ctx, email)
		return nil, apperrors.ErrInvalidCredentials
	}

	s.resetLoginAttempts(ctx, email)

	if err := s.userRepo.TouchLastLogin(ctx, user.ID); err != nil {
		// A stale last_login must not block an otherwise valid login.
		logger.Error("failed to update last_login", zap.Uint64("userID", user.ID), zap.Error(err))
	}

	logger.Info("successful login", zap.Uint64("userID", user.ID))
	return user, nil
}

// ResetPassword is the administrative override: it does not need the old
// password and is how freshly created accounts get activated.
func (s *AuthService) ResetPassword(ctx context.Context, actor *dto.AuthUser, targetID uint64, payload dto.ResetPasswordDTO) (*entities.User, error) {
	if actor.RoleType != entities.RoleAdmin && actor.RoleType != entities.RoleHR {
		return nil, apperrors.ErrForbidden
	}

	if len(payload.NewPassword) < s.cfg.MinPasswordLength {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("Password must be at least %d characters long", s.cfg.MinPasswordLength), nil)
	}

	target, err := s.userRepo.FindActiveUserByID(ctx, targetID)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}

	hash, err := utils.HashPassword(payload.NewPassword, s.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdatePassword(ctx, target.ID, hash); err != nil {
		return nil, err
	}

	s.logger.Info("password reset",
		zap.Uint64("targetID", target.ID),
		zap.String("targetEmail", target.Email),
		zap.Uint64("actorID", actor.ID),
	)
	return target, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, actorID uint64, payload dto.ChangePasswordDTO) error {
	if len(payload.NewPassword) < s.cfg.MinPasswordLength {
		return apperrors.NewValidationError(
			fmt.Sprintf("New password must be at least %d characters long", s.cfg.MinPasswordLength), nil)
	}
	if payload.NewPassword == payload.CurrentPassword {
		return apperrors.NewValidationError("New password must be different from current password", nil)
	}

	user, err := s.userRepo.FindActiveUserByID(ctx, actorID)
	if err != nil {
		return apperrors.ErrUserNotFound
	}

	if !user.HasPassword() {
		return apperrors.NewValidationError("No current password set. Please contact administrator.", nil)
	}

	if err := utils.ComparePasswords(*user.PasswordHash, payload.CurrentPassword); err != nil {
		return apperrors.NewHttpError(http.StatusUnauthorized, apperrors.KindInvalidCredentials, "Current password is incorrect", err)
	}

	hash, err := utils.HashPassword(payload.NewPassword, s.cfg.BcryptCost)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}

	s.logger.Info("password changed", zap.Uint64("userID", user.ID))
	return nil
}

// ActivateAccount consumes the one-time token issued at user creation and
// sets the initial password.
func (s *AuthService) ActivateAccount(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < s.cfg.MinPasswordLength {
		return apperrors.NewValidationError(
			fmt.Sprintf("Password must be at least %d characters long", s.cfg.MinPasswordLength), nil)
	}

	cacheKey := activationKey(token)
	userIDStr, err := s.cacheRepo.Get(ctx, cacheKey)
	if err != nil {
		return apperrors.NewHttpError(http.StatusBadRequest, apperrors.KindValidationFailed, "Invalid or expired activation token", err)
	}

	userID, err := strconv.ParseUint(userIDStr, 10, 64)
	if err != nil || userID == 0 {
		return apperrors.NewInternalError(fmt.Errorf("malformed user id %q in activation cache", userIDStr))
	}

	user, err := s.userRepo.FindActiveUserByID(ctx, userID)
	if err != nil {
		return apperrors.ErrUserNotFound
	}
	if user.HasPassword() {
		return apperrors.NewValidationError("Account is already activated", nil)
	}

	hash, err := utils.HashPassword(newPassword, s.cfg.BcryptCost)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}

	s.cacheRepo.Del(ctx, cacheKey)
	s.logger.Info("account activated", zap.Uint64("userID", user.ID))
	return nil
}

// EnsureBootstrapAdmin gives the seeded admin row a usable password on
// first boot when ADMIN_PASSWORD is set. A row that already carries a hash
// is left alone, so a stale env value never overwrites a rotated password.
func (s *AuthService) EnsureBootstrapAdmin(ctx context.Context) error {
	if s.cfg.BootstrapAdminPassword == "" {
		return nil
	}
	if len(s.cfg.BootstrapAdminPassword) < s.cfg.MinPasswordLength {
		return apperrors.NewValidationError(
			fmt.Sprintf("Bootstrap admin password must be at least %d characters long", s.cfg.MinPasswordLength), nil)
	}

	email := utils.NormalizeEmail(s.cfg.BootstrapAdminEmail)
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		s.logger.Warn("bootstrap admin row not found", zap.String("email", email))
		return nil
	}
	if user.HasPassword() {
		return nil
	}

	hash, err := utils.HashPassword(s.cfg.BootstrapAdminPassword, s.cfg.BcryptCost)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}

	s.logger.Info("bootstrap admin password applied", zap.Uint64("userID", user.ID), zap.String("email", email))
	return nil
}

func (s *AuthService) GetUserByID(ctx context.Context, userID uint64) (*entities.User, error) {
	user, err := s.userRepo.FindActiveUserByID(ctx, userID)
	if err != nil {
		s.logger.Warn("GetUserByID: user not found", zap.Uint64("userID", userID), zap.Error(err))
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (s *AuthService) checkLockout(ctx context.Context, email string) error {
	// Key exists means locked. The response stays indistinguishable from a
	// plain bad-credentials deny.
	if _, err := s.cacheRepo.Get(ctx, lockoutKey(email)); err == nil {
		return apperrors.ErrInvalidCredentials
	}
	return nil
}

func (s *AuthService) handleFailedLoginAttempt(ctx context.Context, email string) {
	attemptsKey := attemptsKey(email)
	attempts, err := s.cacheRepo.Incr(ctx, attemptsKey)
	if err != nil {
		return
	}
	s.cacheRepo.Expire(ctx, attemptsKey, s.cfg.LockoutDuration)
	if attempts >= int64(s.cfg.MaxLoginAttempts) {
		s.cacheRepo.Set(ctx, lockoutKey(email), "locked", s.cfg.LockoutDuration)
		s.cacheRepo.Del(ctx, attemptsKey)
	}
}

func (s *AuthService) resetLoginAttempts(ctx context.Context, email string) {
	s.cacheRepo.Del(ctx, attemptsKey(email), lockoutKey(email))
}

func attemptsKey(email string) string { return fmt.Sprintf("login_attempts:%s", email) }
func lockoutKey(email string) string  { return fmt.Sprintf("login_lockout:%s", email) }
func activationKey(token string) string {
	return fmt.Sprintf("activation:%s", token)
}
