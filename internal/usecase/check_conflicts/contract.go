package check_conflicts

import (
	"context"

	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
	"github.com/m04kA/SMC-SmartScheduler/pkg/types"
)

// TaskRepository интерфейс репозитория задач
type TaskRepository interface {
	GetScheduledForDate(ctx context.Context, date types.Date, excludeID *int64) ([]*domain.Task, error)
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
