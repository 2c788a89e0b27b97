package tasks

import (
	"context"

	"github.com/m04kA/SMC-SmartScheduler/internal/service/tasks/models"
)

type TaskService interface {
	GetByID(ctx context.Context, id int64) (*models.TaskResponse, error)
	List(ctx context.Context, req *models.ListTasksRequest) (*models.TaskListResponse, error)
	Today(ctx context.Context) (*models.TaskListResponse, error)
	ThisWeek(ctx context.Context) (*models.TaskListResponse, error)
	Calendar(ctx context.Context, year, month int) (*models.CalendarResponse, error)
	UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.TaskResponse, error)
	Complete(ctx context.Context, id int64) (*models.TaskResponse, error)
	Start(ctx context.Context, id int64) (*models.TaskResponse, error)
	Pause(ctx context.Context, id int64) (*models.TaskResponse, error)
	UpdateProgress(ctx context.Context, id int64, req *models.UpdateProgressRequest) (*models.TaskResponse, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*models.StatsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
