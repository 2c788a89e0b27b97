package task

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
	"github.com/m04kA/SMC-SmartScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-SmartScheduler/pkg/sqlbuilder"
	"github.com/m04kA/SMC-SmartScheduler/pkg/types"
)

const tableName = "tasks"

var columns = []string{
	"id",
	"title",
	"description",
	"status",
	"priority",
	"task_type",
	"category",
	"tags",
	"estimated_duration",
	"actual_duration",
	"scheduled_date",
	"start_minute",
	"end_minute",
	"all_day",
	"due_date",
	"completed_at",
	"project_id",
	"progress_percentage",
	"location",
	"energy_level",
	"focus_time_required",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с задачами
type Repository struct {
	db DBExecutor
	qb sqlbuilder.Builder
}

// NewRepository создает новый экземпляр репозитория задач
func NewRepository(db DBExecutor, qb sqlbuilder.Builder) *Repository {
	return &Repository{db: db, qb: qb}
}

// Create создает новую задачу.
// Если в контексте передана активная транзакция, использует её:
// так проверка конфликтов и вставка выполняются атомарно.
func (r *Repository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	tags, err := encodeTags(task.Tags)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - %v", ErrEncodeTags, err)
	}

	now := time.Now().UTC()
	query, args, err := r.qb.Insert(tableName).
		Columns(columns[1:]...).
		Values(
			task.Title,
			task.Description,
			task.Status,
			task.Priority,
			task.TaskType,
			task.Category,
			tags,
			task.EstimatedDuration,
			task.ActualDuration,
			task.ScheduledDate,
			task.StartTime,
			task.EndTime,
			task.AllDay,
			utcPtr(task.DueDate),
			utcPtr(task.CompletedAt),
			task.ProjectID,
			task.ProgressPercentage,
			task.Location,
			task.EnergyLevel,
			task.FocusTimeRequired,
			task.Notes,
			now,
			now,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&task.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	task.CreatedAt = now
	task.UpdatedAt = now

	return task, nil
}

// GetByID получает задачу по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	task, err := scanTask(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan task: %v", ErrScanRow, err)
	}

	return task, nil
}

// List получает задачи по фильтру.
// Сортировка: сначала по дате и времени выполнения, затем по дате создания.
func (r *Repository) List(ctx context.Context, filter domain.TaskFilter) ([]*domain.Task, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.qb.Select(columns...).From(tableName)

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.Priority != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"priority": *filter.Priority})
	}
	if filter.Category != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"category": *filter.Category})
	}
	if filter.ProjectID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"project_id": *filter.ProjectID})
	}
	if filter.DateFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"scheduled_date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"scheduled_date": *filter.DateTo})
	}
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + strings.ToLower(*filter.Search) + "%"
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.Expr("LOWER(title) LIKE ?", pattern),
			squirrel.Expr("LOWER(description) LIKE ?", pattern),
		})
	}

	selectBuilder = selectBuilder.OrderBy("scheduled_date ASC", "start_minute ASC", "created_at DESC", "id ASC")

	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		selectBuilder = selectBuilder.Offset(uint64(filter.Offset))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "List", query, args)
}

// GetScheduledForDate получает активные задачи с интервалом на дату, отсортированные по началу.
// excludeID исключает задачу из выборки (при переносе самой себя).
// Внутри транзакции postgres строки блокируются FOR UPDATE.
func (r *Repository) GetScheduledForDate(ctx context.Context, date types.Date, excludeID *int64) ([]*domain.Task, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.qb.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"scheduled_date": date}).
		Where(squirrel.NotEq{"start_minute": nil}).
		Where(squirrel.NotEq{"end_minute": nil}).
		Where(squirrel.Eq{"all_day": false}).
		Where(squirrel.NotEq{"status": statusStrings(domain.InactiveTaskStatuses)}).
		OrderBy("start_minute ASC", "end_minute ASC", "id ASC")

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	selectBuilder = r.qb.LockForUpdate(ctx, selectBuilder)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetScheduledForDate - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "GetScheduledForDate", query, args)
}

// GetByDateRange получает задачи, запланированные на даты из [from, to]
func (r *Repository) GetByDateRange(ctx context.Context, from, to types.Date) ([]*domain.Task, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Select(columns...).
		From(tableName).
		Where(squirrel.GtOrEq{"scheduled_date": from}).
		Where(squirrel.LtOrEq{"scheduled_date": to}).
		OrderBy("scheduled_date ASC", "start_minute ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDateRange - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "GetByDateRange", query, args)
}

// ListByProject получает все задачи проекта
func (r *Repository) ListByProject(ctx context.Context, projectID int64) ([]*domain.Task, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"project_id": projectID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProject - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "ListByProject", query, args)
}

// Update сохраняет все изменяемые поля задачи
func (r *Repository) Update(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	tags, err := encodeTags(task.Tags)
	if err != nil {
		return nil, fmt.Errorf("%w: Update - %v", ErrEncodeTags, err)
	}

	now := time.Now().UTC()
	query, args, err := r.qb.Update(tableName).
		SetMap(map[string]interface{}{
			"title":               task.Title,
			"description":         task.Description,
			"status":              task.Status,
			"priority":            task.Priority,
			"task_type":           task.TaskType,
			"category":            task.Category,
			"tags":                tags,
			"estimated_duration":  task.EstimatedDuration,
			"actual_duration":     task.ActualDuration,
			"scheduled_date":      task.ScheduledDate,
			"start_minute":        task.StartTime,
			"end_minute":          task.EndTime,
			"all_day":             task.AllDay,
			"due_date":            utcPtr(task.DueDate),
			"completed_at":        utcPtr(task.CompletedAt),
			"project_id":          task.ProjectID,
			"progress_percentage": task.ProgressPercentage,
			"location":            task.Location,
			"energy_level":        task.EnergyLevel,
			"focus_time_required": task.FocusTimeRequired,
			"notes":               task.Notes,
			"updated_at":          now,
		}).
		Where(squirrel.Eq{"id": task.ID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	if err := r.execOne(ctx, executor, "Update", query, args); err != nil {
		return nil, err
	}

	task.UpdatedAt = now
	return task, nil
}

// UpdateStatus обновляет статус задачи.
// Для completed дополнительно выставляются completed_at и прогресс 100%.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.TaskStatus, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := r.qb.Update(tableName).
		Set("status", status).
		Set("updated_at", at.UTC()).
		Where(squirrel.Eq{"id": id})

	if status == domain.TaskStatusCompleted {
		updateBuilder = updateBuilder.
			Set("completed_at", at.UTC()).
			Set("progress_percentage", domain.MaxProgress)
	} else {
		updateBuilder = updateBuilder.Set("completed_at", nil)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "UpdateStatus", query, args)
}

// UpdateProgress обновляет процент выполнения задачи
func (r *Repository) UpdateProgress(ctx context.Context, id int64, progress float64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Update(tableName).
		Set("progress_percentage", progress).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateProgress - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "UpdateProgress", query, args)
}

// Delete удаляет задачу
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Delete(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "Delete", query, args)
}

// CountByStatus считает задачи в разрезе статусов
func (r *Repository) CountByStatus(ctx context.Context) (map[domain.TaskStatus]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Select("status", "COUNT(*)").
		From(tableName).
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[domain.TaskStatus]int)
	for rows.Next() {
		var (
			status domain.TaskStatus
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("%w: CountByStatus - scan count: %v", ErrScanRow, err)
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// CountOverdue считает незакрытые задачи с прошедшим due_date
func (r *Repository) CountOverdue(ctx context.Context, now time.Time) (int, error) {
	return r.count(ctx, "CountOverdue", squirrel.And{
		squirrel.Lt{"due_date": now.UTC()},
		squirrel.NotEq{"status": statusStrings(domain.ClosedTaskStatuses)},
	})
}

// CountHighPriority считает задачи с приоритетом high и urgent
func (r *Repository) CountHighPriority(ctx context.Context) (int, error) {
	priorities := make([]string, len(domain.HighPriorities))
	for i, p := range domain.HighPriorities {
		priorities[i] = string(p)
	}
	return r.count(ctx, "CountHighPriority", squirrel.Eq{"priority": priorities})
}

// CountForDate считает задачи, запланированные на дату
func (r *Repository) CountForDate(ctx context.Context, date types.Date) (int, error) {
	return r.count(ctx, "CountForDate", squirrel.Eq{"scheduled_date": date})
}

func (r *Repository) count(ctx context.Context, op string, where squirrel.Sqlizer) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Select("COUNT(*)").
		From(tableName).
		Where(where).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %s - scan count: %v", ErrScanRow, op, err)
	}

	return count, nil
}

func (r *Repository) query(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) ([]*domain.Task, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan task: %v", ErrScanRow, op, err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return tasks, nil
}

func (r *Repository) execOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrTaskNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task                 domain.Task
		tags                 string
		createdAt, updatedAt sql.NullTime
		dueDate, completedAt sql.NullTime
	)

	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Priority,
		&task.TaskType,
		&task.Category,
		&tags,
		&task.EstimatedDuration,
		&task.ActualDuration,
		&task.ScheduledDate,
		&task.StartTime,
		&task.EndTime,
		&task.AllDay,
		&dueDate,
		&completedAt,
		&task.ProjectID,
		&task.ProgressPercentage,
		&task.Location,
		&task.EnergyLevel,
		&task.FocusTimeRequired,
		&task.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if tags != "" {
		if err := json.Unmarshal([]byte(tags), &task.Tags); err != nil {
			return nil, fmt.Errorf("decode tags: %w", err)
		}
	}
	if task.Tags == nil {
		task.Tags = []string{}
	}

	if dueDate.Valid {
		task.DueDate = &dueDate.Time
	}
	if completedAt.Valid {
		task.CompletedAt = &completedAt.Time
	}
	task.CreatedAt = createdAt.Time
	task.UpdatedAt = updatedAt.Time

	return &task, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func statusStrings(statuses []domain.TaskStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
