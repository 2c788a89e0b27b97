package schedule_task

import (
	"context"

	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
	scheduleTask "github.com/m04kA/SMC-SmartScheduler/internal/usecase/schedule_task"
)

type ScheduleTaskUseCase interface {
	Execute(ctx context.Context, req *scheduleTask.Request) (*domain.Task, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
