package dashboard

import (
	"context"

	projectModels "github.com/m04kA/SMC-SmartScheduler/internal/service/projects/models"
	taskModels "github.com/m04kA/SMC-SmartScheduler/internal/service/tasks/models"
)

type TaskService interface {
	Today(ctx context.Context) (*taskModels.TaskListResponse, error)
	List(ctx context.Context, req *taskModels.ListTasksRequest) (*taskModels.TaskListResponse, error)
	Stats(ctx context.Context) (*taskModels.StatsResponse, error)
}

type ProjectService interface {
	List(ctx context.Context, req *projectModels.ListProjectsRequest) (*projectModels.ProjectListResponse, error)
}

type Logger interface {
	Error(format string, v ...interface{})
}
