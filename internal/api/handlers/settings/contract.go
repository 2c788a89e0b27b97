package settings

import (
	"context"

	"github.com/m04kA/SMC-SmartScheduler/internal/service/settings/models"
)

type SettingsService interface {
	Get(ctx context.Context, userID int64) (*models.SettingsResponse, error)
	Update(ctx context.Context, userID int64, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
