package schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
)

// TaskRepository интерфейс репозитория задач
type TaskRepository interface {
	List(ctx context.Context, filter domain.TaskFilter) ([]*domain.Task, error)
}

// DeadlineRepository интерфейс репозитория дедлайнов
type DeadlineRepository interface {
	List(ctx context.Context, filter domain.DeadlineFilter) ([]*domain.Deadline, error)
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
