package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
	"github.com/m04kA/SMC-SmartScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-SmartScheduler/pkg/sqlbuilder"
)

const tableName = "schedule_settings"

// Repository репозиторий для работы с настройками рабочего дня
type Repository struct {
	db DBExecutor
	qb sqlbuilder.Builder
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor, qb sqlbuilder.Builder) *Repository {
	return &Repository{db: db, qb: qb}
}

// GetByUserID получает настройки пользователя
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*domain.ScheduleSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Select(
		"id",
		"user_id",
		"work_start_minute",
		"work_end_minute",
		"default_duration_minutes",
		"created_at",
		"updated_at",
	).
		From(tableName).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		s                    domain.ScheduleSettings
		createdAt, updatedAt sql.NullTime
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.UserID,
		&s.WorkStart,
		&s.WorkEnd,
		&s.DefaultDurationMinutes,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - scan settings: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// Upsert создает настройки пользователя или обновляет существующие
func (r *Repository) Upsert(ctx context.Context, s *domain.ScheduleSettings) (*domain.ScheduleSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	now := time.Now().UTC()
	query, args, err := r.qb.Insert(tableName).
		Columns(
			"user_id",
			"work_start_minute",
			"work_end_minute",
			"default_duration_minutes",
			"created_at",
			"updated_at",
		).
		Values(s.UserID, s.WorkStart, s.WorkEnd, s.DefaultDurationMinutes, now, now).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			work_start_minute = excluded.work_start_minute,
			work_end_minute = excluded.work_end_minute,
			default_duration_minutes = excluded.default_duration_minutes,
			updated_at = excluded.updated_at
			RETURNING id`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&s.ID); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now

	return s, nil
}
