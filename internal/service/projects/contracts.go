package projects

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
	"github.com/m04kA/SMC-SmartScheduler/pkg/types"
)

// ProjectRepository интерфейс репозитория проектов
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	List(ctx context.Context, filter domain.ProjectFilter) ([]*domain.Project, error)
	ListUpcoming(ctx context.Context, cutoff types.Date) ([]*domain.Project, error)
	UpdateProgress(ctx context.Context, id int64, progress float64, completedAt *time.Time) error
}

// TaskRepository интерфейс репозитория задач (только для пересчета прогресса)
type TaskRepository interface {
	ListByProject(ctx context.Context, projectID int64) ([]*domain.Task, error)
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
