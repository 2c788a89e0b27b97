package deadline

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

const tableName = "deadlines"

var columns = []string{
	"id",
	"title",
	"description",
	"deadline_type",
	"due_date",
	"completed",
	"completed_at",
	"color",
	"task_id",
	"project_id",
	"recurrence",
	"recurrence_end_date",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с дедлайнами
type Repository struct {
	db DBExecutor
	qb sqlbuilder.Builder
}

// NewRepository создает новый экземпляр репозитория дедлайнов
func NewRepository(db DBExecutor, qb sqlbuilder.Builder) *Repository {
	return &Repository{db: db, qb: qb}
}

// Create создает новый дедлайн
func (r *Repository) Create(ctx context.Context, d *domain.Deadline) (*domain.Deadline, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	now := time.Now().UTC()
	query, args, err := r.qb.Insert(tableName).
		Columns(columns[1:]...).
		Values(
			d.Title,
			d.Description,
			d.Type,
			d.DueDate.UTC(),
			d.Completed,
			utcPtr(d.CompletedAt),
			d.Color,
			d.TaskID,
			d.ProjectID,
			d.Recurrence,
			utcPtr(d.RecurrenceEndDate),
			now,
			now,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&d.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	d.CreatedAt = now
	d.UpdatedAt = now

	return d, nil
}

// GetByID получает дедлайн по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Deadline, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	d, err := scanDeadline(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDeadlineNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan deadline: %v", ErrScanRow, err)
	}

	return d, nil
}

// List получает дедлайны по фильтру, отсортированные по сроку
func (r *Repository) List(ctx context.Context, filter domain.DeadlineFilter) ([]*domain.Deadline, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.qb.Select(columns...).From(tableName)

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"due_date": filter.From.UTC()})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"due_date": filter.To.UTC()})
	}
	if filter.Completed != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"completed": *filter.Completed})
	}
	if filter.Type != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"deadline_type": *filter.Type})
	}
	if filter.ProjectID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"project_id": *filter.ProjectID})
	}
	if filter.TaskID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"task_id": *filter.TaskID})
	}
	if filter.Recurring {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"recurrence": domain.RecurrenceNone})
	}

	query, args, err := selectBuilder.OrderBy("due_date ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	deadlines := make([]*domain.Deadline, 0)
	for rows.Next() {
		d, err := scanDeadline(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan deadline: %v", ErrScanRow, err)
		}
		deadlines = append(deadlines, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return deadlines, nil
}

// ListRecurring получает дедлайны с повторением
func (r *Repository) ListRecurring(ctx context.Context) ([]*domain.Deadline, error) {
	return r.List(ctx, domain.DeadlineFilter{Recurring: true})
}

// Update сохраняет изменяемые поля дедлайна
func (r *Repository) Update(ctx context.Context, d *domain.Deadline) (*domain.Deadline, error) {
	now := time.Now().UTC()

	query, args, err := r.qb.Update(tableName).
		SetMap(map[string]interface{}{
			"title":               d.Title,
			"description":         d.Description,
			"deadline_type":       d.Type,
			"due_date":            d.DueDate.UTC(),
			"completed":           d.Completed,
			"completed_at":        utcPtr(d.CompletedAt),
			"color":               d.Color,
			"task_id":             d.TaskID,
			"project_id":          d.ProjectID,
			"recurrence":          d.Recurrence,
			"recurrence_end_date": utcPtr(d.RecurrenceEndDate),
			"updated_at":          now,
		}).
		Where(squirrel.Eq{"id": d.ID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	if err := r.execOne(ctx, "Update", query, args); err != nil {
		return nil, err
	}

	d.UpdatedAt = now
	return d, nil
}

// MarkComplete отмечает дедлайн выполненным
func (r *Repository) MarkComplete(ctx context.Context, id int64, at time.Time) error {
	query, args, err := r.qb.Update(tableName).
		Set("completed", true).
		Set("completed_at", at.UTC()).
		Set("updated_at", at.UTC()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkComplete - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, "MarkComplete", query, args)
}

// Extend переносит срок дедлайна
func (r *Repository) Extend(ctx context.Context, id int64, dueDate time.Time) error {
	query, args, err := r.qb.Update(tableName).
		Set("due_date", dueDate.UTC()).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Extend - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, "Extend", query, args)
}

// Delete удаляет дедлайн
func (r *Repository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.qb.Delete(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, "Delete", query, args)
}

// CountOverdue считает невыполненные дедлайны с прошедшим сроком
func (r *Repository) CountOverdue(ctx context.Context, now time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Select("COUNT(*)").
		From(tableName).
		Where(squirrel.Eq{"completed": false}).
		Where(squirrel.Lt{"due_date": now.UTC()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountOverdue - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountOverdue - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

func (r *Repository) execOne(ctx context.Context, op, query string, args []interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrDeadlineNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDeadline(row rowScanner) (*domain.Deadline, error) {
	var (
		d                    domain.Deadline
		completedAt, endDate sql.NullTime
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&d.ID,
		&d.Title,
		&d.Description,
		&d.Type,
		&d.DueDate,
		&d.Completed,
		&completedAt,
		&d.Color,
		&d.TaskID,
		&d.ProjectID,
		&d.Recurrence,
		&endDate,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if completedAt.Valid {
		d.CompletedAt = &completedAt.Time
	}
	if endDate.Valid {
		d.RecurrenceEndDate = &endDate.Time
	}
	d.CreatedAt = createdAt.Time
	d.UpdatedAt = updatedAt.Time

	return &d, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
