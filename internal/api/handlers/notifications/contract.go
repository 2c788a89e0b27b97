package notifications

import (
	"context"

	"github.com/m04kA/SMC-SmartScheduler/internal/service/notifications/models"
)

type NotificationService interface {
	Create(ctx context.Context, req *models.CreateNotificationRequest) (*models.NotificationResponse, error)
	GetByID(ctx context.Context, id int64) (*models.NotificationResponse, error)
	List(ctx context.Context, req *models.ListNotificationsRequest) (*models.NotificationListResponse, error)
	MarkSent(ctx context.Context, id int64) (*models.NotificationResponse, error)
	MarkRead(ctx context.Context, id int64) (*models.NotificationResponse, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
