package entities

import "time"

const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelExpert       = "Expert"
)

type Assessment struct {
	ID         uint64    `json:"id" db:"id"`
	UserID     uint64    `json:"user_id" db:"user_id"`
	SkillID    uint64    `json:"skill_id" db:"skill_id"`
	Score      int       `json:"score" db:"score"`
	Level      string    `json:"level" db:"level"`
	Notes      *string   `json:"notes" db:"notes"`
	AssessedBy uint64    `json:"assessed_by" db:"assessed_by"`
	AssessedAt time.Time `json:"assessed_at" db:"assessed_at"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`

	// Denormalized for list views.
	EmployeeName *string `json:"employee_name,omitempty" db:"-"`
	SkillName    *string `json:"skill_name,omitempty" db:"-"`
}
