package create_task

import (
	"context"

	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
	createTask "github.com/m04kA/SMC-SmartScheduler/internal/usecase/create_task"
)

type CreateTaskUseCase interface {
	Execute(ctx context.Context, req *createTask.Request) (*domain.Task, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
