package schedule_task

import (
	"fmt"

	scheduleTask "github.com/m04kA/SMC-SmartScheduler/internal/usecase/schedule_task"
	"github.com/m04kA/SMC-SmartScheduler/pkg/types"
)

// ScheduleTaskRequest HTTP request model
type ScheduleTaskRequest struct {
	ScheduledDate string  `json:"scheduledDate"`       // "2025-05-05"
	StartTime     *string `json:"startTime,omitempty"` // "09:00"
	EndTime       *string `json:"endTime,omitempty"`
	AllDay        bool    `json:"allDay,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ScheduleTaskRequest) ToUseCaseRequest(taskID int64) (*scheduleTask.Request, error) {
	date, err := types.ParseDate(r.ScheduledDate)
	if err != nil {
		return nil, fmt.Errorf("scheduledDate: %w", err)
	}

	req := &scheduleTask.Request{
		TaskID: taskID,
		Date:   date,
		AllDay: r.AllDay,
	}

	if r.StartTime != nil {
		t, err := types.ParseTimeOfDay(*r.StartTime)
		if err != nil {
			return nil, fmt.Errorf("startTime: %w", err)
		}
		req.StartTime = &t
	}
	if r.EndTime != nil {
		t, err := types.ParseTimeOfDay(*r.EndTime)
		if err != nil {
			return nil, fmt.Errorf("endTime: %w", err)
		}
		req.EndTime = &t
	}

	return req, nil
}
