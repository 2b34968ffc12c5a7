package dto

import (
	"time"

	"competence-system/internal/entities"
)

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required"`
}

type ResetPasswordDTO struct {
	NewPassword string `json:"newPassword" validate:"required,min=6,max=128"`
}

type ActivateAccountDTO struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6,max=128"`
}

type ChangePasswordDTO struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=128"`
}

// UserPublicDTO is the sanitized user view returned by auth endpoints.
// It never carries the password hash.
type UserPublicDTO struct {
	ID         uint64     `json:"id"`
	EmployeeID string     `json:"employee_id"`
	Email      string     `json:"email"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	RoleType   string     `json:"role_type"`
	JobRole    *string    `json:"job_role"`
	Department *string    `json:"department"`
	ManagerID  *uint64    `json:"manager_id"`
	LastLogin  *time.Time `json:"last_login"`
}

func NewUserPublicDTO(u *entities.User) UserPublicDTO {
	return UserPublicDTO{
		ID:         u.ID,
		EmployeeID: u.EmployeeID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		RoleType:   u.RoleType,
		JobRole:    u.JobRole,
		Department: u.Department,
		ManagerID:  u.ManagerID,
		LastLogin:  u.LastLogin,
	}
}

// LoginResponseDTO is serialized as-is: login keeps token/user/expires_in
// at the top level next to success and message rather than nesting them
// under the generic envelope body.
type LoginResponseDTO struct {
	Success   bool          `json:"success"`
	Message   string        `json:"message"`
	Token     string        `json:"token"`
	User      UserPublicDTO `json:"user"`
	ExpiresIn string        `json:"expires_in"`
}

// AuthUser is the identity the gate attaches to the request context after
// re-resolving the caller from the store.
type AuthUser struct {
	ID         uint64 `json:"id"`
	EmployeeID string `json:"employee_id"`
	Email      string `json:"email"`
	RoleType   string `json:"role_type"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
}

func NewAuthUser(u *entities.User) AuthUser {
	return AuthUser{
		ID:         u.ID,
		EmployeeID: u.EmployeeID,
		Email:      u.Email,
		RoleType:   u.RoleType,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
	}
}
