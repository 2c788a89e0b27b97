package check_conflicts

import (
	"fmt"

	"github.com/m04kA/SMC-SmartScheduler/internal/scheduler"
)

// validateRequest валидирует входные данные и строит интервал
func validateRequest(req *Request) (scheduler.TimeInterval, error) {
	if req.Date.IsZero() {
		return scheduler.TimeInterval{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	interval, err := scheduler.NewTimeInterval(req.StartTime, req.EndTime)
	if err != nil {
		return scheduler.TimeInterval{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.ExcludeTaskID != nil && *req.ExcludeTaskID <= 0 {
		return scheduler.TimeInterval{}, fmt.Errorf("%w: excludeTaskId must be positive", ErrInvalidInput)
	}

	return interval, nil
}
