package projects

import (
	"context"

	"github.com/m04kA/SMC-SmartScheduler/internal/service/projects/models"
)

type ProjectService interface {
	Create(ctx context.Context, req *models.CreateProjectRequest) (*models.ProjectResponse, error)
	GetByID(ctx context.Context, id int64) (*models.ProjectResponse, error)
	List(ctx context.Context, req *models.ListProjectsRequest) (*models.ProjectListResponse, error)
	Upcoming(ctx context.Context, daysAhead int) (*models.ProjectListResponse, error)
	RecalculateProgress(ctx context.Context, id int64) (*models.ProjectResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
