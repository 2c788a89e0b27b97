package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
	"github.com/m04kA/SMC-SmartScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-SmartScheduler/pkg/sqlbuilder"
)

const tableName = "users"

var columns = []string{"id", "username", "email", "is_active", "created_at", "updated_at"}

// Repository репозиторий для работы с пользователями
type Repository struct {
	db DBExecutor
	qb sqlbuilder.Builder
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db DBExecutor, qb sqlbuilder.Builder) *Repository {
	return &Repository{db: db, qb: qb}
}

// Create создает пользователя. Дубликат username или email возвращает ErrUserExists.
func (r *Repository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	now := time.Now().UTC()
	query, args, err := r.qb.Insert(tableName).
		Columns("username", "email", "is_active", "created_at", "updated_at").
		Values(u.Username, u.Email, u.IsActive, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&u.ID); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	u.CreatedAt = now
	u.UpdatedAt = now

	return u, nil
}

// GetByID получает пользователя по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getBy(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByUsername получает пользователя по имени
func (r *Repository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getBy(ctx, "GetByUsername", squirrel.Eq{"username": username})
}

func (r *Repository) getBy(ctx context.Context, op string, where squirrel.Eq) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Select(columns...).
		From(tableName).
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var (
		u                    domain.User
		createdAt, updatedAt sql.NullTime
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.IsActive,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan user: %v", ErrScanRow, op, err)
	}

	u.CreatedAt = createdAt.Time
	u.UpdatedAt = updatedAt.Time

	return &u, nil
}

// isUniqueViolation распознает нарушение уникальности в postgres (23505) и sqlite
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "23505") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
