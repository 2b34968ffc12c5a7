package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"competence-system/internal/dto"
)

type DashboardRepositoryInterface interface {
	GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error)
}

type DashboardRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDashboardRepository(storage *pgxpool.Pool, logger *zap.Logger) DashboardRepositoryInterface {
	return &DashboardRepository{storage: storage, logger: logger}
}

func (r *DashboardRepository) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	summary := &dto.DashboardSummaryDTO{
		LevelBreakdown: map[string]int{},
	}

	err := r.storage.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users WHERE is_active = true),
			(SELECT COUNT(*) FROM users WHERE is_active = true AND password_hash IS NULL),
			(SELECT COUNT(*) FROM skills),
			(SELECT COUNT(*) FROM assessments),
			(SELECT COUNT(DISTINCT user_id) FROM assessments),
			COALESCE((SELECT AVG(score) FROM assessments), 0)
	`).Scan(
		&summary.ActiveUsers, &summary.PendingActivation, &summary.Skills,
		&summary.Assessments, &summary.AssessedUsers, &summary.AverageScore,
	)
	if err != nil {
		return nil, fmt.Errorf("loading dashboard counters: %w", err)
	}

	rows, err := r.storage.Query(ctx, `SELECT level, COUNT(*) FROM assessments GROUP BY level`)
	if err != nil {
		return nil, fmt.Errorf("loading level breakdown: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var level string
		var count int
		if err := rows.Scan(&level, &count); err != nil {
			return nil, err
		}
		summary.LevelBreakdown[level] = count
	}
	return summary, rows.Err()
}
