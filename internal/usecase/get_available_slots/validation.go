package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
	"github.com/m04kA/SMC-SmartScheduler/internal/scheduler"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.DurationMinutes != nil && (*req.DurationMinutes <= 0 || *req.DurationMinutes > domain.MaxTaskDurationMinutes) {
		return fmt.Errorf("%w: duration must be between 1 and %d", ErrInvalidInput, domain.MaxTaskDurationMinutes)
	}

	if req.WorkStart != nil && !req.WorkStart.IsValid() {
		return fmt.Errorf("%w: workStart is outside of the day", ErrInvalidInput)
	}

	if req.WorkEnd != nil && !req.WorkEnd.IsValid() {
		return fmt.Errorf("%w: workEnd is outside of the day", ErrInvalidInput)
	}

	return nil
}

// resolveWindow накладывает параметры запроса на рабочий день из настроек
func resolveWindow(settings *domain.ScheduleSettings, req *Request) (scheduler.WorkWindow, error) {
	window := settings.WorkWindow()
	if req.WorkStart != nil {
		window.Start = *req.WorkStart
	}
	if req.WorkEnd != nil {
		window.End = *req.WorkEnd
	}

	if err := window.Validate(); err != nil {
		return scheduler.WorkWindow{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return window, nil
}

// resolveDuration возвращает длительность из запроса или из настроек
func resolveDuration(settings *domain.ScheduleSettings, req *Request) int {
	if req.DurationMinutes != nil {
		return *req.DurationMinutes
	}
	if settings.DefaultDurationMinutes > 0 {
		return settings.DefaultDurationMinutes
	}
	return domain.DefaultTaskDurationMinutes
}
