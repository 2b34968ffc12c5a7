package dto

type DashboardSummaryDTO struct {
	ActiveUsers       uint64         `json:"active_users"`
	Skills            uint64         `json:"skills"`
	Assessments       uint64         `json:"assessments"`
	AverageScore      float64        `json:"average_score"`
	LevelBreakdown    map[string]int `json:"level_breakdown"`
	AssessedUsers     uint64         `json:"assessed_users"`
	PendingActivation uint64         `json:"pending_activation"`
}
