package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
	userRepo "github.com/m04kA/SMC-SmartScheduler/internal/infra/storage/user"
	"github.com/m04kA/SMC-SmartScheduler/internal/service/users/models"
)

const maxUsernameLength = 50

// Service сервис для работы с пользователями
type Service struct {
	repo   UserRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса пользователей
func NewService(repo UserRepository, logger Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Create создает пользователя с уникальными username и email
func (s *Service) Create(ctx context.Context, req *models.CreateUserRequest) (*models.UserResponse, error) {
	u := &domain.User{
		Username: strings.TrimSpace(req.Username),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		IsActive: true,
	}

	if u.Username == "" || len(u.Username) > maxUsernameLength {
		return nil, fmt.Errorf("%w: username must be 1-%d characters", ErrInvalidInput, maxUsernameLength)
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return nil, fmt.Errorf("%w: invalid email %q", ErrInvalidInput, req.Email)
	}

	created, err := s.repo.Create(ctx, u)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserExists) {
			s.logger.Warn("Create: user %q already exists", u.Username)
			return nil, ErrUserExists
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: user id=%d username=%q", created.ID, created.Username)
	return models.FromDomainUser(created), nil
}

// GetByID получает пользователя по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.UserResponse, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("GetByID: user id=%d not found", id)
			return nil, ErrUserNotFound
		}
		s.logger.Error("GetByID: repository error for user id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainUser(u), nil
}
