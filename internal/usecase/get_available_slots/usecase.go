package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SmartScheduler/internal/scheduler"
	"github.com/m04kA/SMC-SmartScheduler/pkg/ptr"
)

// UseCase use case для поиска свободных слотов на дату
type UseCase struct {
	taskRepo TaskRepository
	settings SettingsProvider
	metrics  Metrics
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	taskRepo TaskRepository,
	settings SettingsProvider,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		taskRepo: taskRepo,
		settings: settings,
		metrics:  metrics,
		logger:   logger,
	}
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d, date=%s, duration=%d", req.UserID, req.Date, ptr.Value(req.DurationMinutes))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Настройки рабочего дня пользователя
	settings, err := uc.settings.Resolve(ctx, req.UserID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get settings for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}
	if settings.IsDefault() {
		uc.logger.Info("GetAvailableSlots: using default settings for user=%d", req.UserID)
	}

	window, err := resolveWindow(settings, req)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: invalid work window: %v", err)
		return nil, err
	}
	duration := resolveDuration(settings, req)

	// 3. Задачи дня
	tasks, err := uc.taskRepo.GetScheduledForDate(ctx, req.Date, nil)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get tasks for %s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: failed to get scheduled tasks: %v", ErrInternal, err)
	}

	// 4. Поиск промежутков
	free, err := scheduler.FindAvailableSlots(duration, busyItems(tasks), window)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: scheduler rejected input: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	uc.metrics.IncSlotSearch(len(free) > 0)
	uc.logger.Info("GetAvailableSlots: found %d slots of %d min on %s within %s-%s",
		len(free), duration, req.Date, window.Start, window.End)

	return &Response{
		Date:            req.Date,
		DurationMinutes: duration,
		WorkStart:       window.Start,
		WorkEnd:         window.End,
		Slots:           toSlots(free),
	}, nil
}
