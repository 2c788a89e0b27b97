package get_available_slots

import (
	"context"

	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
	"github.com/m04kA/SMC-SmartScheduler/pkg/types"
)

// TaskRepository интерфейс репозитория задач
type TaskRepository interface {
	// GetScheduledForDate получает задачи даты с интервалом, отсортированные по началу
	GetScheduledForDate(ctx context.Context, date types.Date, excludeID *int64) ([]*domain.Task, error)
}

// SettingsProvider возвращает настройки расписания пользователя с учетом значений по умолчанию
type SettingsProvider interface {
	Resolve(ctx context.Context, userID int64) (*domain.ScheduleSettings, error)
}

// Metrics счетчики планировщика
type Metrics interface {
	IncSlotSearch(found bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
