package deadlines

import (
	"context"

	"github.com/m04kA/SMC-SmartScheduler/internal/service/deadlines/models"
)

type DeadlineService interface {
	Create(ctx context.Context, req *models.CreateDeadlineRequest) (*models.DeadlineResponse, error)
	GetByID(ctx context.Context, id int64) (*models.DeadlineResponse, error)
	List(ctx context.Context, req *models.ListDeadlinesRequest) (*models.DeadlineListResponse, error)
	Recurring(ctx context.Context) (*models.DeadlineListResponse, error)
	Update(ctx context.Context, id int64, req *models.UpdateDeadlineRequest) (*models.DeadlineResponse, error)
	Complete(ctx context.Context, id int64) (*models.DeadlineResponse, error)
	Extend(ctx context.Context, id int64, req *models.ExtendDeadlineRequest) (*models.DeadlineResponse, error)
	Delete(ctx context.Context, id int64) error
	Analytics(ctx context.Context) (*models.AnalyticsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
