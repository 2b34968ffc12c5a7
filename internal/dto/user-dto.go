package dto

import "github.com/aarondl/null/v8"

type CreateUserDTO struct {
	EmployeeID string   `json:"employee_id" validate:"required,employee_id"`
	Email      string   `json:"email" validate:"required,email,max=254"`
	FirstName  string   `json:"first_name" validate:"required,max=100"`
	LastName   string   `json:"last_name" validate:"required,max=100"`
	RoleType   string   `json:"role_type" validate:"required,role_type"`
	JobRole    *string  `json:"job_role" validate:"omitempty,max=150"`
	Department *string  `json:"department" validate:"omitempty,max=150"`
	ManagerID  null.Int `json:"manager_id"`
}

type UpdateUserDTO struct {
	FirstName  string    `json:"first_name" validate:"omitempty,max=100"`
	LastName   string    `json:"last_name" validate:"omitempty,max=100"`
	RoleType   string    `json:"role_type" validate:"omitempty,role_type"`
	JobRole    *string   `json:"job_role" validate:"omitempty,max=150"`
	Department *string   `json:"department" validate:"omitempty,max=150"`
	ManagerID  null.Int  `json:"manager_id"`
	IsActive   null.Bool `json:"is_active"`
}
