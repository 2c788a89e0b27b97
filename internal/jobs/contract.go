package jobs

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
)

// TaskStatsSource агрегаты по задачам
type TaskStatsSource interface {
	DomainStats(ctx context.Context) (*domain.TaskStats, error)
}

// DeadlineCounter считает просроченные дедлайны
type DeadlineCounter interface {
	CountOverdue(ctx context.Context, now time.Time) (int, error)
}

// IdleCleaner удаляет данные неактивных клиентов (лимитер запросов)
type IdleCleaner interface {
	Cleanup() int
}

type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
