package dto

type CreateSkillDTO struct {
	Name        string  `json:"name" validate:"required,max=150"`
	Category    string  `json:"category" validate:"required,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

type UpdateSkillDTO struct {
	Name        string  `json:"name" validate:"omitempty,max=150"`
	Category    string  `json:"category" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}
