package update_task

import (
	"context"

	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
	updateTask "github.com/m04kA/SMC-SmartScheduler/internal/usecase/update_task"
)

type UpdateTaskUseCase interface {
	Execute(ctx context.Context, req *updateTask.Request) (*domain.Task, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
