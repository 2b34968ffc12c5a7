package entities

import "time"

// Role values are a closed set; anything else is rejected at input.
const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleHR       = "hr"
	RoleAdmin    = "admin"
	RoleLeader   = "leader"
)

func IsValidRole(role string) bool {
	switch role {
	case RoleEmployee, RoleManager, RoleHR, RoleAdmin, RoleLeader:
		return true
	}
	return false
}

type User struct {
	ID         uint64 `json:"id" db:"id"`
	EmployeeID string `json:"employee_id" db:"employee_id"`
	Email      string `json:"email" db:"email"`

	// NULL means the account has not been activated yet; such users cannot
	// authenticate until an admin sets a password.
	PasswordHash *string `json:"-" db:"password_hash"`

	FirstName  string  `json:"first_name" db:"first_name"`
	LastName   string  `json:"last_name" db:"last_name"`
	RoleType   string  `json:"role_type" db:"role_type"`
	JobRole    *string `json:"job_role" db:"job_role"`
	Department *string `json:"department" db:"department"`
	ManagerID  *uint64 `json:"manager_id" db:"manager_id"`

	IsActive  bool       `json:"is_active" db:"is_active"`
	LastLogin *time.Time `json:"last_login" db:"last_login"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// HasPassword reports whether the account has completed activation.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
