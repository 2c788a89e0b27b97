package schedule_task

import (
	"context"

	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
	"github.com/m04kA/SMC-SmartScheduler/internal/scheduler"
	"github.com/m04kA/SMC-SmartScheduler/pkg/types"
)

// TaskRepository интерфейс репозитория задач
type TaskRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) (*domain.Task, error)
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

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
