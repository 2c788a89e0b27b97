package create_task

import (
	"fmt"
	"time"

	createTask "github.com/m04kA/SMC-SmartScheduler/internal/usecase/create_task"
	"github.com/m04kA/SMC-SmartScheduler/pkg/types"
)

// CreateTaskRequest HTTP request model
type CreateTaskRequest struct {
	Title             string     `json:"title"`
	Description       *string    `json:"description,omitempty"`
	Priority          string     `json:"priority,omitempty"`
	TaskType          string     `json:"taskType,omitempty"`
	Category          *string    `json:"category,omitempty"`
	Tags              []string   `json:"tags,omitempty"`
	EstimatedDuration *int       `json:"estimatedDuration,omitempty"`
	ScheduledDate     *string    `json:"scheduledDate,omitempty"` // "2025-05-05"
	StartTime         *string    `json:"startTime,omitempty"`     // "09:00"
	EndTime           *string    `json:"endTime,omitempty"`
	AllDay            bool       `json:"allDay,omitempty"`
	DueDate           *time.Time `json:"dueDate,omitempty"`
	ProjectID         *int64     `json:"projectId,omitempty"`
	Location          *string    `json:"location,omitempty"`
	EnergyLevel       *string    `json:"energyLevel,omitempty"`
	FocusTimeRequired bool       `json:"focusTimeRequired,omitempty"`
	Notes             *string    `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateTaskRequest) ToUseCaseRequest() (*createTask.Request, error) {
	req := &createTask.Request{
		Title:             r.Title,
		Description:       r.Description,
		Priority:          r.Priority,
		TaskType:          r.TaskType,
		Category:          r.Category,
		Tags:              r.Tags,
		EstimatedDuration: r.EstimatedDuration,
		AllDay:            r.AllDay,
		DueDate:           r.DueDate,
		ProjectID:         r.ProjectID,
		Location:          r.Location,
		EnergyLevel:       r.EnergyLevel,
		FocusTimeRequired: r.FocusTimeRequired,
		Notes:             r.Notes,
	}

	if r.ScheduledDate != nil {
		d, err := types.ParseDate(*r.ScheduledDate)
		if err != nil {
			return nil, fmt.Errorf("scheduledDate: %w", err)
		}
		req.ScheduledDate = &d
	}

	var err error
	if req.StartTime, err = parseOptionalTime("startTime", r.StartTime); err != nil {
		return nil, err
	}
	if req.EndTime, err = parseOptionalTime("endTime", r.EndTime); err != nil {
		return nil, err
	}

	return req, nil
}

func parseOptionalTime(field string, s *string) (*types.TimeOfDay, error) {
	if s == nil {
		return nil, nil
	}
	t, err := types.ParseTimeOfDay(*s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return &t, nil
}
