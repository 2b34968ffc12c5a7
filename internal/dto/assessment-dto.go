package dto

import "github.com/aarondl/null/v8"

type CreateAssessmentDTO struct {
	UserID  uint64  `json:"user_id" validate:"required"`
	SkillID uint64  `json:"skill_id" validate:"required"`
	Score   int     `json:"score" validate:"gte=0,lte=100"`
	Level   string  `json:"level" validate:"required,oneof=Beginner Intermediate Expert"`
	Notes   *string `json:"notes" validate:"omitempty,max=2000"`
}

type UpdateAssessmentDTO struct {
	Score null.Int `json:"score"`
	Level string   `json:"level" validate:"omitempty,oneof=Beginner Intermediate Expert"`
	Notes *string  `json:"notes" validate:"omitempty,max=2000"`
}
