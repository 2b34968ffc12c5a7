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

const skillSelectFields = "id, name, category, description, created_at, updated_at"

var skillListColumns = map[string]string{
	"category":   "category",
	"name":       "name",
	"id":         "id",
	"created_at": "created_at",
}

type SkillRepositoryInterface interface {
	GetSkills(ctx context.Context, filter types.Filter) ([]entities.Skill, uint64, error)
	FindSkillByID(ctx context.Context, id uint64) (*entities.Skill, error)
	CreateSkill(ctx context.Context, entity *entities.Skill) (*entities.Skill, error)
	UpdateSkill(ctx context.Context, entity *entities.Skill) (*entities.Skill, error)
	DeleteSkill(ctx context.Context, id uint64) error
}

type SkillRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewSkillRepository(storage *pgxpool.Pool, logger *zap.Logger) SkillRepositoryInterface {
	return &SkillRepository{storage: storage, logger: logger}
}

func scanSkill(row pgx.Row) (*entities.Skill, error) {
	var skill entities.Skill
	err := row.Scan(&skill.ID, &skill.Name, &skill.Category, &skill.Description, &skill.CreatedAt, &skill.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &skill, nil
}

func (r *SkillRepository) GetSkills(ctx context.Context, filter types.Filter) ([]entities.Skill, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	base := psql.Select(skillSelectFields).From("skills")
	countBase := psql.Select("COUNT(id)").From("skills")

	if filter.Search != "" {
		cond := sq.ILike{"name": "%" + filter.Search + "%"}
		base = base.Where(cond)
		countBase = countBase.Where(cond)
	}

	countSQL, countArgs, err := bd.ApplyListParams(countBase, types.Filter{Filter: filter.Filter}, skillListColumns).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("building skill count query: %w", err)
	}

	var totalCount uint64
	if err := r.storage.QueryRow(ctx, countSQL, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("counting skills: %w", err)
	}
	if totalCount == 0 {
		return []entities.Skill{}, 0, nil
	}

	listQuery := bd.ApplyListParams(base, filter, skillListColumns)
	if len(filter.Sort) == 0 {
		listQuery = listQuery.OrderBy("name ASC")
	}
	listSQL, listArgs, err := listQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("building skill list query: %w", err)
	}

	rows, err := r.storage.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing skills: %w", err)
	}
	defer rows.Close()

	skills := make([]entities.Skill, 0)
	for rows.Next() {
		skill, err := scanSkill(rows)
		if err != nil {
			return nil, 0, err
		}
		skills = append(skills, *skill)
	}
	return skills, totalCount, rows.Err()
}

func (r *SkillRepository) FindSkillByID(ctx context.Context, id uint64) (*entities.Skill, error) {
	query := fmt.Sprintf("SELECT %s FROM skills WHERE id = $1", skillSelectFields)
	return scanSkill(r.storage.QueryRow(ctx, query, id))
}

func (r *SkillRepository) CreateSkill(ctx context.Context, entity *entities.Skill) (*entities.Skill, error) {
	query := fmt.Sprintf(`
		INSERT INTO skills (name, category, description)
		VALUES ($1, $2, $3)
		RETURNING %s`, skillSelectFields)
	return scanSkill(r.storage.QueryRow(ctx, query, entity.Name, entity.Category, entity.Description))
}

func (r *SkillRepository) UpdateSkill(ctx context.Context, entity *entities.Skill) (*entities.Skill, error) {
	query := fmt.Sprintf(`
		UPDATE skills
		SET name = $1, category = $2, description = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING %s`, skillSelectFields)
	return scanSkill(r.storage.QueryRow(ctx, query, entity.Name, entity.Category, entity.Description, entity.ID))
}

func (r *SkillRepository) DeleteSkill(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM skills WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
