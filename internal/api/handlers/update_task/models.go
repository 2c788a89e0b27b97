package update_task

import (
	"fmt"
	"time"

	updateTask "github.com/m04kA/SMC-SmartScheduler/internal/usecase/update_task"
	"github.com/m04kA/SMC-SmartScheduler/pkg/types"
)

// UpdateTaskRequest HTTP request model. Отсутствующие поля не меняются.
type UpdateTaskRequest struct {
	Title              *string    `json:"title,omitempty"`
	Description        *string    `json:"description,omitempty"`
	Status             *string    `json:"status,omitempty"`
	Priority           *string    `json:"priority,omitempty"`
	TaskType           *string    `json:"taskType,omitempty"`
	Category           *string    `json:"category,omitempty"`
	Tags               *[]string  `json:"tags,omitempty"`
	EstimatedDuration  *int       `json:"estimatedDuration,omitempty"`
	ActualDuration     *int       `json:"actualDuration,omitempty"`
	ScheduledDate      *string    `json:"scheduledDate,omitempty"`
	StartTime          *string    `json:"startTime,omitempty"`
	EndTime            *string    `json:"endTime,omitempty"`
	AllDay             *bool      `json:"allDay,omitempty"`
	ClearSchedule      bool       `json:"clearSchedule,omitempty"`
	DueDate            *time.Time `json:"dueDate,omitempty"`
	ProjectID          *int64     `json:"projectId,omitempty"`
	ProgressPercentage *float64   `json:"progressPercentage,omitempty"`
	Location           *string    `json:"location,omitempty"`
	EnergyLevel        *string    `json:"energyLevel,omitempty"`
	FocusTimeRequired  *bool      `json:"focusTimeRequired,omitempty"`
	Notes              *string    `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateTaskRequest) ToUseCaseRequest(taskID int64) (*updateTask.Request, error) {
	req := &updateTask.Request{
		TaskID:             taskID,
		Title:              r.Title,
		Description:        r.Description,
		Status:             r.Status,
		Priority:           r.Priority,
		TaskType:           r.TaskType,
		Category:           r.Category,
		Tags:               r.Tags,
		EstimatedDuration:  r.EstimatedDuration,
		ActualDuration:     r.ActualDuration,
		AllDay:             r.AllDay,
		ClearSchedule:      r.ClearSchedule,
		DueDate:            r.DueDate,
		ProjectID:          r.ProjectID,
		ProgressPercentage: r.ProgressPercentage,
		Location:           r.Location,
		EnergyLevel:        r.EnergyLevel,
		FocusTimeRequired:  r.FocusTimeRequired,
		Notes:              r.Notes,
	}

	if r.ScheduledDate != nil {
		d, err := types.ParseDate(*r.ScheduledDate)
		if err != nil {
			return nil, fmt.Errorf("scheduledDate: %w", err)
		}
		req.ScheduledDate = &d
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
