package update_task

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
	Update(ctx context.Context, task *domain.Task) (*domain.Task, error)
}

// ProjectRepository интерфейс репозитория проектов
type ProjectRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
}

// ProjectRefresher пересчитывает прогресс проекта
type ProjectRefresher interface {
	RefreshProject(ctx context.Context, projectID int64) error
}

// ConflictFinder ищет задачи, пересекающиеся с интервалом
type ConflictFinder interface {
	Find(ctx context.Context, date types.Date, interval scheduler.TimeInterval, excludeID *int64) ([]*domain.Task, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчики планировщика
type Metrics interface {
	IncConflict(operation string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
