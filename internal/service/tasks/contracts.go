package tasks

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
	"github.com/m04kA/SMC-SmartScheduler/internal/scheduler"
	"github.com/m04kA/SMC-SmartScheduler/pkg/types"
)

// TaskRepository интерфейс репозитория задач
type TaskRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	List(ctx context.Context, filter domain.TaskFilter) ([]*domain.Task, error)
	GetByDateRange(ctx context.Context, from, to types.Date) ([]*domain.Task, error)
	ListByProject(ctx context.Context, projectID int64) ([]*domain.Task, error)
	UpdateStatus(ctx context.Context, id int64, status domain.TaskStatus, at time.Time) error
	UpdateProgress(ctx context.Context, id int64, progress float64) error
	Delete(ctx context.Context, id int64) error
	CountByStatus(ctx context.Context) (map[domain.TaskStatus]int, error)
	CountOverdue(ctx context.Context, now time.Time) (int, error)
	CountHighPriority(ctx context.Context) (int, error)
	CountForDate(ctx context.Context, date types.Date) (int, error)
}

// ProjectRepository интерфейс репозитория проектов для пересчета прогресса
type ProjectRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	UpdateProgress(ctx context.Context, id int64, progress float64, completedAt *time.Time) error
}

// ConflictFinder ищет задачи, пересекающиеся с интервалом
type ConflictFinder interface {
	Find(ctx context.Context, date types.Date, interval scheduler.TimeInterval, excludeID *int64) ([]*domain.Task, error)
}

// Metrics счетчики планировщика
type Metrics interface {
	IncConflict(operation string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
