package notification

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

const tableName = "notifications"

var columns = []string{
	"id",
	"user_id",
	"notification_type",
	"target_id",
	"message",
	"scheduled_time",
	"sent",
	"is_read",
	"created_at",
}

// Repository репозиторий для работы с уведомлениями
type Repository struct {
	db DBExecutor
	qb sqlbuilder.Builder
}

// NewRepository создает новый экземпляр репозитория уведомлений
func NewRepository(db DBExecutor, qb sqlbuilder.Builder) *Repository {
	return &Repository{db: db, qb: qb}
}

// Create создает новое уведомление
func (r *Repository) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	now := time.Now().UTC()
	query, args, err := r.qb.Insert(tableName).
		Columns(columns[1:]...).
		Values(
			n.UserID,
			n.Type,
			n.TargetID,
			n.Message,
			n.ScheduledTime.UTC(),
			n.Sent,
			n.Read,
			now,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&n.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	n.CreatedAt = now

	return n, nil
}

// GetByID получает уведомление по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Notification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	n, err := scanNotification(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotificationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan notification: %v", ErrScanRow, err)
	}

	return n, nil
}

// List получает уведомления по фильтру, ближайшие первыми
func (r *Repository) List(ctx context.Context, filter domain.NotificationFilter) ([]*domain.Notification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.qb.Select(columns...).From(tableName)

	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if filter.Sent != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"sent": *filter.Sent})
	}
	if filter.Read != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_read": *filter.Read})
	}
	if filter.Upcoming {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"scheduled_time": filter.Now.UTC()})
	}

	selectBuilder = selectBuilder.OrderBy("scheduled_time ASC", "id ASC")
	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	notifications := make([]*domain.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan notification: %v", ErrScanRow, err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return notifications, nil
}

// MarkSent отмечает уведомление отправленным
func (r *Repository) MarkSent(ctx context.Context, id int64) error {
	return r.setFlag(ctx, "MarkSent", id, "sent")
}

// MarkRead отмечает уведомление прочитанным
func (r *Repository) MarkRead(ctx context.Context, id int64) error {
	return r.setFlag(ctx, "MarkRead", id, "is_read")
}

// Delete удаляет уведомление
func (r *Repository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.qb.Delete(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, "Delete", query, args)
}

func (r *Repository) setFlag(ctx context.Context, op string, id int64, column string) error {
	query, args, err := r.qb.Update(tableName).
		Set(column, true).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	return r.execOne(ctx, op, query, args)
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
		return ErrNotificationNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanNotification(row rowScanner) (*domain.Notification, error) {
	var (
		n         domain.Notification
		createdAt sql.NullTime
	)

	err := row.Scan(
		&n.ID,
		&n.UserID,
		&n.Type,
		&n.TargetID,
		&n.Message,
		&n.ScheduledTime,
		&n.Sent,
		&n.Read,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	n.CreatedAt = createdAt.Time

	return &n, nil
}
