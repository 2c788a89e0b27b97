package notifications

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
)

// NotificationRepository интерфейс репозитория уведомлений
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	GetByID(ctx context.Context, id int64) (*domain.Notification, error)
	List(ctx context.Context, filter domain.NotificationFilter) ([]*domain.Notification, error)
	MarkSent(ctx context.Context, id int64) error
	MarkRead(ctx context.Context, id int64) error
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
