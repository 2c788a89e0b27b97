package deadlines

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
)

// DeadlineRepository интерфейс репозитория дедлайнов
type DeadlineRepository interface {
	Create(ctx context.Context, d *domain.Deadline) (*domain.Deadline, error)
	GetByID(ctx context.Context, id int64) (*domain.Deadline, error)
	List(ctx context.Context, filter domain.DeadlineFilter) ([]*domain.Deadline, error)
	ListRecurring(ctx context.Context) ([]*domain.Deadline, error)
	Update(ctx context.Context, d *domain.Deadline) (*domain.Deadline, error)
	MarkComplete(ctx context.Context, id int64, at time.Time) error
	Extend(ctx context.Context, id int64, dueDate time.Time) error
	Delete(ctx context.Context, id int64) error
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
