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

const userSelectFields = "id, employee_id, email, password_hash, first_name, last_name, role_type, job_role, department, manager_id, is_active, last_login, created_at, updated_at"

var userListColumns = map[string]string{
	"role_type":  "role_type",
	"department": "department",
	"is_active":  "is_active",
	"manager_id": "manager_id",
	"id":         "id",
	"email":      "email",
	"last_name":  "last_name",
	"created_at": "created_at",
}

type UserRepositoryInterface interface {
	GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error)
	FindUserByID(ctx context.Context, id uint64) (*entities.User, error)
	FindActiveUserByID(ctx context.Context, id uint64) (*entities.User, error)
	FindUserByEmail(ctx context.Context, email string) (*entities.User, error)
	CreateUser(ctx context.Context, entity *entities.User) (*entities.User, error)
	UpdateUser(ctx context.Context, entity *entities.User) (*entities.User, error)
	DeactivateUser(ctx context.Context, id uint64) error
	UpdatePassword(ctx context.Context, userID uint64, newPasswordHash string) error
	TouchLastLogin(ctx context.Context, userID uint64) error
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	err := row.Scan(
		&user.ID, &user.EmployeeID, &user.Email, &user.PasswordHash,
		&user.FirstName, &user.LastName, &user.RoleType, &user.JobRole,
		&user.Department, &user.ManagerID, &user.IsActive, &user.LastLogin,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	base := psql.Select(userSelectFields).From("users")
	countBase := psql.Select("COUNT(id)").From("users")

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		cond := sq.Or{
			sq.ILike{"first_name": like},
			sq.ILike{"last_name": like},
			sq.ILike{"email": like},
			sq.ILike{"employee_id": like},
		}
		base = base.Where(cond)
		countBase = countBase.Where(cond)
	}

	countQuery := bd.ApplyListParams(countBase, types.Filter{Filter: filter.Filter}, userListColumns)
	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("building user count query: %w", err)
	}

	var totalCount uint64
	if err := r.storage.QueryRow(ctx, countSQL, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("counting users: %w", err)
	}
	if totalCount == 0 {
		return []entities.User{}, 0, nil
	}

	listQuery := bd.ApplyListParams(base, filter, userListColumns)
	if len(filter.Sort) == 0 {
		listQuery = listQuery.OrderBy("id ASC")
	}
	listSQL, listArgs, err := listQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("building user list query: %w", err)
	}
	r.logger.Debug("listing users", zap.String("query", listSQL))

	rows, err := r.storage.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	users := make([]entities.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *user)
	}
	return users, totalCount, rows.Err()
}

func (r *UserRepository) FindUserByID(ctx context.Context, id uint64) (*entities.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE id = $1", userSelectFields)
	return scanUser(r.storage.QueryRow(ctx, query, id))
}

func (r *UserRepository) FindActiveUserByID(ctx context.Context, id uint64) (*entities.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE id = $1 AND is_active = true", userSelectFields)
	return scanUser(r.storage.QueryRow(ctx, query, id))
}

func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE email = $1", userSelectFields)
	return scanUser(r.storage.QueryRow(ctx, query, email))
}

func (r *UserRepository) CreateUser(ctx context.Context, entity *entities.User) (*entities.User, error) {
	query := fmt.Sprintf(`
		INSERT INTO users (employee_id, email, first_name, last_name, role_type, job_role, department, manager_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, true)
		RETURNING %s`, userSelectFields)

	row := r.storage.QueryRow(ctx, query,
		entity.EmployeeID, entity.Email, entity.FirstName, entity.LastName,
		entity.RoleType, entity.JobRole, entity.Department, entity.ManagerID,
	)
	return scanUser(row)
}

func (r *UserRepository) UpdateUser(ctx context.Context, entity *entities.User) (*entities.User, error) {
	updateQuery := fmt.Sprintf(`
		UPDATE users
		SET first_name = $1, last_name = $2, role_type = $3, job_role = $4,
		    department = $5, manager_id = $6, is_active = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING %s`, userSelectFields)

	row := r.storage.QueryRow(ctx, updateQuery,
		entity.FirstName, entity.LastName, entity.RoleType, entity.JobRole,
		entity.Department, entity.ManagerID, entity.IsActive, entity.ID,
	)
	return scanUser(row)
}

func (r *UserRepository) DeactivateUser(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE users SET is_active = false, updated_at = NOW() WHERE id = $1 AND is_active = true`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID uint64, newPasswordHash string) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2 AND is_active = true`,
		newPasswordHash, userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, userID uint64) error {
	_, err := r.storage.Exec(ctx, `UPDATE users SET last_login = NOW() WHERE id = $1`, userID)
	return err
}
