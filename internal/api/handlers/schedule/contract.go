package schedule

import (
	"context"

	"github.com/m04kA/SMC-SmartScheduler/internal/service/schedule/models"
)

type FeedService interface {
	Feed(ctx context.Context, req *models.FeedRequest) (*models.FeedResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
