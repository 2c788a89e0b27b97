package settings

import (
	"context"

	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
	"github.com/m04kA/SMC-SmartScheduler/pkg/types"
)

// SettingsRepository интерфейс репозитория настроек рабочего дня
type SettingsRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.ScheduleSettings, error)
	Upsert(ctx context.Context, s *domain.ScheduleSettings) (*domain.ScheduleSettings, error)
}

// Defaults значения из конфигурации для пользователей без сохраненных настроек
type Defaults struct {
	WorkStart              types.TimeOfDay
	WorkEnd                types.TimeOfDay
	DefaultDurationMinutes int
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
