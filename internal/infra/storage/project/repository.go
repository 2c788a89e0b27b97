package project

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
	"github.com/m04kA/SMC-SmartScheduler/pkg/types"
)

const tableName = "projects"

var columns = []string{
	"id",
	"name",
	"description",
	"status",
	"start_date",
	"deadline",
	"estimated_completion",
	"progress_percentage",
	"color",
	"completed_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с проектами
type Repository struct {
	db DBExecutor
	qb sqlbuilder.Builder
}

// NewRepository создает новый экземпляр репозитория проектов
func NewRepository(db DBExecutor, qb sqlbuilder.Builder) *Repository {
	return &Repository{db: db, qb: qb}
}

// Create создает новый проект
func (r *Repository) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	now := time.Now().UTC()
	query, args, err := r.qb.Insert(tableName).
		Columns(columns[1:]...).
		Values(
			p.Name,
			p.Description,
			p.Status,
			p.StartDate,
			p.Deadline,
			p.EstimatedCompletion,
			p.ProgressPercentage,
			p.Color,
			p.CompletedAt,
			now,
			now,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&p.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	p.CreatedAt = now
	p.UpdatedAt = now

	return p, nil
}

// GetByID получает проект по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	p, err := scanProject(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan project: %v", ErrScanRow, err)
	}

	return p, nil
}

// List получает проекты по фильтру.
// Без IncludeCompleted завершенные и отмененные проекты не возвращаются.
func (r *Repository) List(ctx context.Context, filter domain.ProjectFilter) ([]*domain.Project, error) {
	selectBuilder := r.qb.Select(columns...).From(tableName)

	switch {
	case filter.Status != nil:
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	case len(filter.Statuses) > 0:
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": projectStatusStrings(filter.Statuses)})
	case !filter.IncludeCompleted:
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": []string{
			string(domain.ProjectStatusCompleted),
			string(domain.ProjectStatusCancelled),
		}})
	}

	if filter.DeadlineBefore != nil {
		selectBuilder = selectBuilder.
			Where(squirrel.NotEq{"deadline": nil}).
			Where(squirrel.LtOrEq{"deadline": *filter.DeadlineBefore})
	}

	query, args, err := selectBuilder.OrderBy("created_at DESC", "id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "List", query, args)
}

// ListUpcoming получает активные и планируемые проекты с дедлайном не позже cutoff,
// ближайшие первыми
func (r *Repository) ListUpcoming(ctx context.Context, cutoff types.Date) ([]*domain.Project, error) {
	query, args, err := r.qb.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"status": []string{
			string(domain.ProjectStatusActive),
			string(domain.ProjectStatusPlanning),
		}}).
		Where(squirrel.NotEq{"deadline": nil}).
		Where(squirrel.LtOrEq{"deadline": cutoff}).
		OrderBy("deadline ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListUpcoming - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "ListUpcoming", query, args)
}

// UpdateProgress обновляет прогресс проекта.
// completedAt != nil переводит проект в completed.
func (r *Repository) UpdateProgress(ctx context.Context, id int64, progress float64, completedAt *time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := r.qb.Update(tableName).
		Set("progress_percentage", progress).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id})

	if completedAt != nil {
		updateBuilder = updateBuilder.
			Set("status", domain.ProjectStatusCompleted).
			Set("completed_at", completedAt.UTC())
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateProgress - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateProgress - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateProgress - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrProjectNotFound
	}

	return nil
}

func (r *Repository) query(ctx context.Context, op, query string, args []interface{}) ([]*domain.Project, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	projects := make([]*domain.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan project: %v", ErrScanRow, op, err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return projects, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var (
		p                    domain.Project
		completedAt          sql.NullTime
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Status,
		&p.StartDate,
		&p.Deadline,
		&p.EstimatedCompletion,
		&p.ProgressPercentage,
		&p.Color,
		&completedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if completedAt.Valid {
		p.CompletedAt = &completedAt.Time
	}
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}

func projectStatusStrings(statuses []domain.ProjectStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}
