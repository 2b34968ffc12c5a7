package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"competence-system/internal/entities"
	"competence-system/internal/infrastructure/bd"
	apperrors "competence-system/pkg/errors"
	"competence-system/pkg/types"
)

const assessmentSelectFields = "a.id, a.user_id, a.skill_id, a.score, a.level, a.notes, a.assessed_by, a.assessed_at, a.created_at, a.updated_at"
const assessmentJoinedFields = assessmentSelectFields + ", u.first_name || ' ' || u.last_name AS employee_name, s.name AS skill_name"
const assessmentJoinClause = "assessments a JOIN users u ON a.user_id = u.id JOIN skills s ON a.skill_id = s.id"

var assessmentListColumns = map[string]string{
	"user_id":     "a.user_id",
	"skill_id":    "a.skill_id",
	"level":       "a.level",
	"assessed_by": "a.assessed_by",
	"id":          "a.id",
	"score":       "a.score",
	"assessed_at": "a.assessed_at",
}

type AssessmentRepositoryInterface interface {
	GetAssessments(ctx context.Context, filter types.Filter) ([]entities.Assessment, uint64, error)
	FindAssessmentByID(ctx context.Context, id uint64) (*entities.Assessment, error)
	CreateAssessment(ctx context.Context, entity *entities.Assessment) (*entities.Assessment, error)
	UpdateAssessment(ctx context.Context, entity *entities.Assessment) (*entities.Assessment, error)
}

type AssessmentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewAssessmentRepository(storage *pgxpool.Pool, logger *zap.Logger) AssessmentRepositoryInterface {
	return &AssessmentRepository{storage: storage, logger: logger}
}

func scanAssessment(row pgx.Row) (*entities.Assessment, error) {
	var a entities.Assessment
	err := row.Scan(
		&a.ID, &a.UserID, &a.SkillID, &a.Score, &a.Level, &a.Notes,
		&a.AssessedBy, &a.AssessedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func scanAssessmentWithNames(rows pgx.Rows) (*entities.Assessment, error) {
	var a entities.Assessment
	err := rows.Scan(
		&a.ID, &a.UserID, &a.SkillID, &a.Score, &a.Level, &a.Notes,
		&a.AssessedBy, &a.AssessedAt, &a.CreatedAt, &a.UpdatedAt,
		&a.EmployeeName, &a.SkillName,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AssessmentRepository) GetAssessments(ctx context.Context, filter types.Filter) ([]entities.Assessment, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	base := psql.Select(assessmentJoinedFields).From(assessmentJoinClause)
	countBase := psql.Select("COUNT(a.id)").From(assessmentJoinClause)

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		cond := sq.Or{
			sq.ILike{"u.first_name": like},
			sq.ILike{"u.last_name": like},
			sq.ILike{"s.name": like},
		}
		base = base.Where(cond)
		countBase = countBase.Where(cond)
	}

	countSQL, countArgs, err := bd.ApplyListParams(countBase, types.Filter{Filter: filter.Filter}, assessmentListColumns).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("building assessment count query: %w", err)
	}

	var totalCount uint64
	if err := r.storage.QueryRow(ctx, countSQL, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("counting assessments: %w", err)
	}
	if totalCount == 0 {
		return []entities.Assessment{}, 0, nil
	}

	listQuery := bd.ApplyListParams(base, filter, assessmentListColumns)
	if len(filter.Sort) == 0 {
		listQuery = listQuery.OrderBy("a.assessed_at DESC")
	}
	listSQL, listArgs, err := listQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("building assessment list query: %w", err)
	}
	r.logger.Debug("listing assessments", zap.String("query", listSQL))

	rows, err := r.storage.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing assessments: %w", err)
	}
	defer rows.Close()

	assessments := make([]entities.Assessment, 0)
	for rows.Next() {
		a, err := scanAssessmentWithNames(rows)
		if err != nil {
			return nil, 0, err
		}
		assessments = append(assessments, *a)
	}
	return assessments, totalCount, rows.Err()
}

func (r *AssessmentRepository) FindAssessmentByID(ctx context.Context, id uint64) (*entities.Assessment, error) {
	query := fmt.Sprintf("SELECT %s FROM assessments a WHERE a.id = $1", assessmentSelectFields)
	return scanAssessment(r.storage.QueryRow(ctx, query, id))
}

func (r *AssessmentRepository) CreateAssessment(ctx context.Context, entity *entities.Assessment) (*entities.Assessment, error) {
	query := fmt.Sprintf(`
		INSERT INTO assessments AS a (user_id, skill_id, score, level, notes, assessed_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s`, assessmentSelectFields)

	row := r.storage.QueryRow(ctx, query,
		entity.UserID, entity.SkillID, entity.Score, entity.Level, entity.Notes, entity.AssessedBy,
	)
	return scanAssessment(row)
}

func (r *AssessmentRepository) UpdateAssessment(ctx context.Context, entity *entities.Assessment) (*entities.Assessment, error) {
	query := fmt.Sprintf(`
		UPDATE assessments AS a
		SET score = $1, level = $2, notes = $3, assessed_by = $4, assessed_at = NOW(), updated_at = NOW()
		WHERE id = $5
		RETURNING %s`, assessmentSelectFields)

	row := r.storage.QueryRow(ctx, query,
		entity.Score, entity.Level, entity.Notes, entity.AssessedBy, entity.ID,
	)
	return scanAssessment(row)
}
