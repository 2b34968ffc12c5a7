package services

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"competence-system/internal/dto"
	"competence-system/internal/entities"
	"competence-system/pkg/config"
	apperrors "competence-system/pkg/errors"
	"competence-system/pkg/types"
)

// fakeUserRepo is an in-memory UserRepositoryInterface keyed by id.
type fakeUserRepo struct {
	users            map[uint64]*entities.User
	lastLoginTouched []uint64
	passwordUpdates  map[uint64]string
}

func newFakeUserRepo(users ...*entities.User) *fakeUserRepo {
	repo := &fakeUserRepo{
		users:           make(map[uint64]*entities.User),
		passwordUpdates: make(map[uint64]string),
	}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error) {
	out := make([]entities.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, uint64(len(out)), nil
}

func (r *fakeUserRepo) FindUserByID(ctx context.Context, id uint64) (*entities.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) FindActiveUserByID(ctx context.Context, id uint64) (*entities.User, error) {
	if u, ok := r.users[id]; ok && u.IsActive {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, entity *entities.User) (*entities.User, error) {
	entity.ID = uint64(len(r.users) + 1)
	r.users[entity.ID] = entity
	return entity, nil
}

func (r *fakeUserRepo) UpdateUser(ctx context.Context, entity *entities.User) (*entities.User, error) {
	r.users[entity.ID] = entity
	return entity, nil
}

func (r *fakeUserRepo) DeactivateUser(ctx context.Context, id uint64) error {
	u, ok := r.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.IsActive = false
	return nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, userID uint64, newPasswordHash string) error {
	u, ok := r.users[userID]
	if !ok || !u.IsActive {
		return apperrors.ErrUserNotFound
	}
	u.PasswordHash = &newPasswordHash
	r.passwordUpdates[userID] = newPasswordHash
	return nil
}

func (r *fakeUserRepo) TouchLastLogin(ctx context.Context, userID uint64) error {
	r.lastLoginTouched = append(r.lastLoginTouched, userID)
	return nil
}

// fakeCache is an in-memory CacheRepositoryInterface. Expirations are
// ignored; tests drive state explicitly.
type fakeCache struct {
	values map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]string)}
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	switch v := value.(type) {
	case string:
		c.values[key] = v
	default:
		c.values[key] = "1"
	}
	return nil
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	if v, ok := c.values[key]; ok {
		return v, nil
	}
	return "", apperrors.ErrNotFound
}

func (c *fakeCache) Del(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.values, k)
	}
	return nil
}

func (c *fakeCache) Incr(ctx context.Context, key string) (int64, error) {
	n, _ := strconv.ParseInt(c.values[key], 10, 64)
	n++
	c.values[key] = strconv.FormatInt(n, 10)
	return n, nil
}

func (c *fakeCache) Expire(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	_, ok := c.values[key]
	return ok, nil
}

func testAuthConfig() *config.AuthConfig {
	return &config.AuthConfig{
		BcryptCost:         bcrypt.MinCost,
		MinPasswordLength:  6,
		MaxLoginAttempts:   3,
		LockoutDuration:    15 * time.Minute,
		ActivationTokenTTL: 72 * time.Hour,
	}
}

func activeUser(id uint64, email, role, password string) *entities.User {
	u := &entities.User{
		ID:         id,
		EmployeeID: "EMP001",
		Email:      email,
		FirstName:  "Test",
		LastName:   "User",
		RoleType:   role,
		IsActive:   true,
	}
	if password != "" {
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		s := string(hash)
		u.PasswordHash = &s
	}
	return u
}

func newTestAuthService(repo *fakeUserRepo, cache *fakeCache) AuthServiceInterface {
	return NewAuthService(repo, cache, zap.NewNop(), testAuthConfig())
}

func TestLoginSuccessNormalizesEmail(t *testing.T) {
	repo := newFakeUserRepo(activeUser(1, "admin@nexusai.com", entities.RoleAdmin, "secret123"))
	svc := newTestAuthService(repo, newFakeCache())

	user, err := svc.Login(context.Background(), dto.LoginDTO{
		Email:    "  Admin@Nexusai.COM ",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), user.ID)
	assert.Contains(t, repo.lastLoginTouched, uint64(1))
}

func TestLoginDenialsAreIndistinguishable(t *testing.T) {
	noHash := activeUser(2, "fresh@nexusai.com", entities.RoleEmployee, "")
	inactive := activeUser(3, "gone@nexusai.com", entities.RoleEmployee, "secret123")
	inactive.IsActive = false

	repo := newFakeUserRepo(
		activeUser(1, "known@nexusai.com", entities.RoleEmployee, "secret123"),
		noHash,
		inactive,
	)
	svc := newTestAuthService(repo, newFakeCache())

	cases := []struct {
		name  string
		email string
		pass  string
	}{
		{"unknown email", "nobody@nexusai.com", "secret123"},
		{"wrong password", "known@nexusai.com", "wrong-pass"},
		{"inactive account", "gone@nexusai.com", "secret123"},
		{"no password set", "fresh@nexusai.com", "secret123"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), dto.LoginDTO{Email: tc.email, Password: tc.pass})
			assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
		})
	}
}

func TestLoginLockoutDeniesEvenCorrectPassword(t *testing.T) {
	repo := newFakeUserRepo(activeUser(1, "locked@nexusai.com", entities.RoleEmployee, "secret123"))
	cache := newFakeCache()
	cache.values["login_lockout:locked@nexusai.com"] = "locked"

	svc := newTestAuthService(repo, cache)

	_, err := svc.Login(context.Background(), dto.LoginDTO{Email: "locked@nexusai.com", Password: "secret123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.Empty(t, repo.lastLoginTouched)
}

func TestLoginSuccessClearsAttemptCounters(t *testing.T) {
	repo := newFakeUserRepo(activeUser(1, "user@nexusai.com", entities.RoleEmployee, "secret123"))
	cache := newFakeCache()
	cache.values["login_attempts:user@nexusai.com"] = "2"

	svc := newTestAuthService(repo, cache)

	_, err := svc.Login(context.Background(), dto.LoginDTO{Email: "user@nexusai.com", Password: "secret123"})
	require.NoError(t, err)
	_, ok := cache.values["login_attempts:user@nexusai.com"]
	assert.False(t, ok)
}

func TestResetPasswordForbiddenForNonPrivilegedActor(t *testing.T) {
	repo := newFakeUserRepo(activeUser(1, "target@nexusai.com", entities.RoleEmployee, "secret123"))
	svc := newTestAuthService(repo, newFakeCache())

	actor := &dto.AuthUser{ID: 9, RoleType: entities.RoleManager}
	_, err := svc.ResetPassword(context.Background(), actor, 1, dto.ResetPasswordDTO{NewPassword: "new-secret"})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	assert.Empty(t, repo.passwordUpdates)
}

func TestResetPasswordTooShortRejectedBeforeLookup(t *testing.T) {
	repo := newFakeUserRepo(activeUser(1, "target@nexusai.com", entities.RoleEmployee, "secret123"))
	svc := newTestAuthService(repo, newFakeCache())

	actor := &dto.AuthUser{ID: 9, RoleType: entities.RoleAdmin}
	_, err := svc.ResetPassword(context.Background(), actor, 1, dto.ResetPasswordDTO{NewPassword: "short"})

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, apperrors.KindValidationFailed, httpErr.Kind)
	assert.Empty(t, repo.passwordUpdates)
}

func TestResetPasswordByHR(t *testing.T) {
	target := activeUser(1, "target@nexusai.com", entities.RoleEmployee, "old-secret")
	repo := newFakeUserRepo(target)
	svc := newTestAuthService(repo, newFakeCache())

	actor := &dto.AuthUser{ID: 9, RoleType: entities.RoleHR}
	updated, err := svc.ResetPassword(context.Background(), actor, 1, dto.ResetPasswordDTO{NewPassword: "new-secret"})
	require.NoError(t, err)
	assert.Equal(t, target.ID, updated.ID)

	hash, ok := repo.passwordUpdates[1]
	require.True(t, ok)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("new-secret")))
}

func TestResetPasswordUnknownTarget(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, newFakeCache())

	actor := &dto.AuthUser{ID: 9, RoleType: entities.RoleAdmin}
	_, err := svc.ResetPassword(context.Background(), actor, 404, dto.ResetPasswordDTO{NewPassword: "new-secret"})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	repo := newFakeUserRepo(activeUser(1, "user@nexusai.com", entities.RoleEmployee, "secret123"))
	svc := newTestAuthService(repo, newFakeCache())

	err := svc.ChangePassword(context.Background(), 1, dto.ChangePasswordDTO{
		CurrentPassword: "wrong",
		NewPassword:     "another-secret",
	})

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, apperrors.KindInvalidCredentials, httpErr.Kind)
}

func TestChangePasswordSameAsCurrentRejected(t *testing.T) {
	repo := newFakeUserRepo(activeUser(1, "user@nexusai.com", entities.RoleEmployee, "secret123"))
	svc := newTestAuthService(repo, newFakeCache())

	err := svc.ChangePassword(context.Background(), 1, dto.ChangePasswordDTO{
		CurrentPassword: "secret123",
		NewPassword:     "secret123",
	})

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, apperrors.KindValidationFailed, httpErr.Kind)
	assert.Empty(t, repo.passwordUpdates)
}

func TestChangePasswordWithoutExistingHash(t *testing.T) {
	repo := newFakeUserRepo(activeUser(1, "fresh@nexusai.com", entities.RoleEmployee, ""))
	svc := newTestAuthService(repo, newFakeCache())

	err := svc.ChangePassword(context.Background(), 1, dto.ChangePasswordDTO{
		CurrentPassword: "anything",
		NewPassword:     "new-secret",
	})

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, apperrors.KindValidationFailed, httpErr.Kind)
}

func TestChangePasswordSuccess(t *testing.T) {
	repo := newFakeUserRepo(activeUser(1, "user@nexusai.com", entities.RoleEmployee, "secret123"))
	svc := newTestAuthService(repo, newFakeCache())

	err := svc.ChangePassword(context.Background(), 1, dto.ChangePasswordDTO{
		CurrentPassword: "secret123",
		NewPassword:     "another-secret",
	})
	require.NoError(t, err)

	hash := repo.passwordUpdates[1]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("another-secret")))
}

func TestActivateAccountConsumesToken(t *testing.T) {
	repo := newFakeUserRepo(activeUser(1, "fresh@nexusai.com", entities.RoleEmployee, ""))
	cache := newFakeCache()
	cache.values["activation:tok-123"] = "1"

	svc := newTestAuthService(repo, cache)

	err := svc.ActivateAccount(context.Background(), "tok-123", "new-secret")
	require.NoError(t, err)

	_, ok := cache.values["activation:tok-123"]
	assert.False(t, ok, "token must be single-use")

	hash := repo.passwordUpdates[1]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("new-secret")))
}

func TestActivateAccountUnknownToken(t *testing.T) {
	repo := newFakeUserRepo(activeUser(1, "fresh@nexusai.com", entities.RoleEmployee, ""))
	svc := newTestAuthService(repo, newFakeCache())

	err := svc.ActivateAccount(context.Background(), "missing", "new-secret")

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, apperrors.KindValidationFailed, httpErr.Kind)
}

func TestEnsureBootstrapAdminSetsInitialPassword(t *testing.T) {
	seed := activeUser(1, "admin@nexusai.com", entities.RoleAdmin, "")
	repo := newFakeUserRepo(seed)

	cfg := testAuthConfig()
	cfg.BootstrapAdminEmail = "admin@nexusai.com"
	cfg.BootstrapAdminPassword = "bootstrap-secret"
	svc := NewAuthService(repo, newFakeCache(), zap.NewNop(), cfg)

	require.NoError(t, svc.EnsureBootstrapAdmin(context.Background()))

	hash, ok := repo.passwordUpdates[1]
	require.True(t, ok)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("bootstrap-secret")))
}

func TestEnsureBootstrapAdminNeverOverwritesExistingHash(t *testing.T) {
	seed := activeUser(1, "admin@nexusai.com", entities.RoleAdmin, "already-set")
	repo := newFakeUserRepo(seed)

	cfg := testAuthConfig()
	cfg.BootstrapAdminEmail = "admin@nexusai.com"
	cfg.BootstrapAdminPassword = "bootstrap-secret"
	svc := NewAuthService(repo, newFakeCache(), zap.NewNop(), cfg)

	require.NoError(t, svc.EnsureBootstrapAdmin(context.Background()))
	assert.Empty(t, repo.passwordUpdates)
}

func TestEnsureBootstrapAdminNoopWithoutPassword(t *testing.T) {
	seed := activeUser(1, "admin@nexusai.com", entities.RoleAdmin, "")
	repo := newFakeUserRepo(seed)

	svc := newTestAuthService(repo, newFakeCache())

	require.NoError(t, svc.EnsureBootstrapAdmin(context.Background()))
	assert.Empty(t, repo.passwordUpdates)
}

func TestActivateAccountAlreadyActivated(t *testing.T) {
	repo := newFakeUserRepo(activeUser(1, "user@nexusai.com", entities.RoleEmployee, "secret123"))
	cache := newFakeCache()
	cache.values["activation:tok-123"] = "1"

	svc := newTestAuthService(repo, cache)

	err := svc.ActivateAccount(context.Background(), "tok-123", "new-secret")

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, apperrors.KindValidationFailed, httpErr.Kind)
}
