package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
	settingsRepo "github.com/m04kA/SMC-SmartScheduler/internal/infra/storage/settings"
	"github.com/m04kA/SMC-SmartScheduler/internal/service/settings/models"
	"github.com/m04kA/SMC-SmartScheduler/pkg/types"
)

// Service сервис настроек рабочего дня
type Service struct {
	repo     SettingsRepository
	defaults Defaults
	logger   Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(repo SettingsRepository, defaults Defaults, logger Logger) *Service {
	return &Service{
		repo:     repo,
		defaults: defaults,
		logger:   logger,
	}
}

// Get возвращает настройки пользователя
func (s *Service) Get(ctx context.Context, userID int64) (*models.SettingsResponse, error) {
	settings, err := s.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainSettings(settings), nil
}

// Resolve возвращает сохраненные настройки или значения по умолчанию
func (s *Service) Resolve(ctx context.Context, userID int64) (*domain.ScheduleSettings, error) {
	settings, err := s.repo.GetByUserID(ctx, userID)
	if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
		return domain.DefaultScheduleSettings(userID, s.defaults.WorkStart, s.defaults.WorkEnd, s.defaults.DefaultDurationMinutes), nil
	}
	if err != nil {
		s.logger.Error("Resolve: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: Resolve - repository error: %v", ErrInternal, err)
	}
	return settings, nil
}

// Update сохраняет настройки. Переданные поля накладываются на текущие значения.
func (s *Service) Update(ctx context.Context, userID int64, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	current, err := s.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.WorkStart != nil {
		start, err := types.ParseTimeOfDay(*req.WorkStart)
		if err != nil {
			return nil, fmt.Errorf("%w: workStart: %v", ErrInvalidInput, err)
		}
		current.WorkStart = start
	}
	if req.WorkEnd != nil {
		end, err := types.ParseTimeOfDay(*req.WorkEnd)
		if err != nil {
			return nil, fmt.Errorf("%w: workEnd: %v", ErrInvalidInput, err)
		}
		current.WorkEnd = end
	}
	if req.DefaultDurationMinutes != nil {
		current.DefaultDurationMinutes = *req.DefaultDurationMinutes
	}

	if err := validate(current); err != nil {
		s.logger.Warn("Update: validation failed for user=%d: %v", userID, err)
		return nil, err
	}

	saved, err := s.repo.Upsert(ctx, current)
	if err != nil {
		s.logger.Error("Update: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: user=%d work day %s-%s, default duration %d min",
		userID, saved.WorkStart, saved.WorkEnd, saved.DefaultDurationMinutes)
	return models.FromDomainSettings(saved), nil
}

func validate(s *domain.ScheduleSettings) error {
	if !s.WorkStart.IsBefore(s.WorkEnd) {
		return fmt.Errorf("%w: workStart must be before workEnd", ErrInvalidInput)
	}
	if s.DefaultDurationMinutes <= 0 || s.DefaultDurationMinutes > domain.MaxTaskDurationMinutes {
		return fmt.Errorf("%w: defaultDurationMinutes must be between 1 and %d", ErrInvalidInput, domain.MaxTaskDurationMinutes)
	}
	return nil
}
