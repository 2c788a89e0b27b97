package schedule_task

import (
	"fmt"

	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
	"github.com/m04kA/SMC-SmartScheduler/internal/scheduler"
	"github.com/m04kA/SMC-SmartScheduler/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TaskID <= 0 {
		return fmt.Errorf("%w: taskId must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if !req.AllDay && req.StartTime == nil {
		return fmt.Errorf("%w: startTime is required unless allDay is set", ErrInvalidInput)
	}
	return nil
}

// resolveInterval вычисляет интервал задачи.
// Без конца интервала берется оценка длительности задачи, иначе 60 минут.
func resolveInterval(task *domain.Task, req *Request) (scheduler.TimeInterval, error) {
	end := req.EndTime
	if end == nil {
		duration := domain.DefaultTaskDurationMinutes
		if task.EstimatedDuration != nil && *task.EstimatedDuration > 0 {
			duration = *task.EstimatedDuration
		}
		derived, err := req.StartTime.AddMinutes(duration)
		if err != nil {
			return scheduler.TimeInterval{}, fmt.Errorf("%w: task does not fit in the day: %v", ErrInvalidInput, err)
		}
		end = &derived
	}

	interval, err := scheduler.NewTimeInterval(*req.StartTime, *end)
	if err != nil {
		return scheduler.TimeInterval{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return interval, nil
}

// applySchedule переносит задачу на дату и интервал
func applySchedule(task *domain.Task, date types.Date, interval *scheduler.TimeInterval) {
	task.ScheduledDate = &date
	task.Status = domain.TaskStatusScheduled

	if interval == nil {
		task.AllDay = true
		task.StartTime = nil
		task.EndTime = nil
		return
	}

	start, end := interval.Start, interval.End
	task.AllDay = false
	task.StartTime = &start
	task.EndTime = &end
}
