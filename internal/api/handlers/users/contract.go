package users

import (
	"context"

	"github.com/m04kA/SMC-SmartScheduler/internal/service/users/models"
)

type UserService interface {
	Create(ctx context.Context, req *models.CreateUserRequest) (*models.UserResponse, error)
	GetByID(ctx context.Context, id int64) (*models.UserResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
