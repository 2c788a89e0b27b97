package update_task

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
	"github.com/m04kA/SMC-SmartScheduler/internal/scheduler"
)

// applyRequest накладывает запрос на задачу и проверяет результат
func applyRequest(task *domain.Task, req *Request, now time.Time) error {
	if req.Title != nil {
		task.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		task.Description = req.Description
	}
	if req.Priority != nil {
		task.Priority = domain.TaskPriority(normalize(*req.Priority))
	}
	if req.TaskType != nil {
		task.TaskType = domain.TaskType(normalize(*req.TaskType))
	}
	if req.Category != nil {
		task.Category = req.Category
	}
	if req.Tags != nil {
		task.Tags = normalizeTags(*req.Tags)
	}
	if req.EstimatedDuration != nil {
		task.EstimatedDuration = req.EstimatedDuration
	}
	if req.ActualDuration != nil {
		task.ActualDuration = req.ActualDuration
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.ProjectID != nil {
		task.ProjectID = req.ProjectID
	}
	if req.Location != nil {
		task.Location = req.Location
	}
	if req.EnergyLevel != nil {
		level := domain.EnergyLevel(normalize(*req.EnergyLevel))
		task.EnergyLevel = &level
	}
	if req.FocusTimeRequired != nil {
		task.FocusTimeRequired = *req.FocusTimeRequired
	}
	if req.Notes != nil {
		task.Notes = req.Notes
	}
	if req.ProgressPercentage != nil {
		if math.IsNaN(*req.ProgressPercentage) {
			return fmt.Errorf("%w: progress is not a number", ErrInvalidInput)
		}
		task.ProgressPercentage = domain.ClampProgress(*req.ProgressPercentage)
	}

	if err := applySchedule(task, req); err != nil {
		return err
	}

	if err := applyStatus(task, req, now); err != nil {
		return err
	}

	return validateFields(task)
}

// applySchedule обновляет дату и интервал
func applySchedule(task *domain.Task, req *Request) error {
	if req.ClearSchedule {
		task.ScheduledDate = nil
		task.StartTime = nil
		task.EndTime = nil
		task.AllDay = false
		if task.Status == domain.TaskStatusScheduled {
			task.Status = domain.TaskStatusPending
		}
		return nil
	}

	if req.ScheduledDate != nil {
		task.ScheduledDate = req.ScheduledDate
	}
	if req.StartTime != nil {
		task.StartTime = req.StartTime
	}
	if req.EndTime != nil {
		task.EndTime = req.EndTime
	}
	if req.AllDay != nil {
		task.AllDay = *req.AllDay
	}

	if task.AllDay {
		if task.ScheduledDate == nil {
			return fmt.Errorf("%w: all-day task needs scheduledDate", ErrInvalidInput)
		}
		task.StartTime = nil
		task.EndTime = nil
		return nil
	}

	if (task.StartTime == nil) != (task.EndTime == nil) {
		return fmt.Errorf("%w: startTime and endTime must be set together", ErrInvalidInput)
	}
	if task.StartTime != nil {
		if task.ScheduledDate == nil {
			return fmt.Errorf("%w: startTime needs scheduledDate", ErrInvalidInput)
		}
		if _, err := scheduler.NewTimeInterval(*task.StartTime, *task.EndTime); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	return nil
}

// applyStatus меняет статус и поля завершения.
// Без явного статуса задача, получившая время, становится scheduled.
func applyStatus(task *domain.Task, req *Request, now time.Time) error {
	wasCompleted := task.Status == domain.TaskStatusCompleted

	if req.Status != nil {
		status := domain.TaskStatus(normalize(*req.Status))
		if !status.IsValid() {
			return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
		}
		task.Status = status
	} else if task.Status == domain.TaskStatusPending && task.ScheduledDate != nil && (task.StartTime != nil || task.AllDay) {
		task.Status = domain.TaskStatusScheduled
	}

	switch {
	case task.Status == domain.TaskStatusCompleted && !wasCompleted:
		task.MarkCompleted(now)
	case task.Status != domain.TaskStatusCompleted && wasCompleted:
		task.CompletedAt = nil
	case task.Status == domain.TaskStatusCompleted:
		task.ProgressPercentage = domain.MaxProgress
	}

	return nil
}

func validateFields(task *domain.Task) error {
	if task.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if len(task.Title) > domain.MaxTitleLength {
		return fmt.Errorf("%w: title is longer than %d characters", ErrInvalidInput, domain.MaxTitleLength)
	}
	if task.Description != nil && len(*task.Description) > domain.MaxDescriptionLength {
		return fmt.Errorf("%w: description is longer than %d characters", ErrInvalidInput, domain.MaxDescriptionLength)
	}
	if task.Notes != nil && len(*task.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are longer than %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	if len(task.Tags) > domain.MaxTagCount {
		return fmt.Errorf("%w: at most %d tags are allowed", ErrInvalidInput, domain.MaxTagCount)
	}
	if !task.Priority.IsValid() {
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, task.Priority)
	}
	if !task.TaskType.IsValid() {
		return fmt.Errorf("%w: unknown task type %q", ErrInvalidInput, task.TaskType)
	}
	if task.EnergyLevel != nil && !task.EnergyLevel.IsValid() {
		return fmt.Errorf("%w: unknown energy level %q", ErrInvalidInput, *task.EnergyLevel)
	}
	if task.EstimatedDuration != nil && (*task.EstimatedDuration <= 0 || *task.EstimatedDuration > domain.MaxTaskDurationMinutes) {
		return fmt.Errorf("%w: estimatedDuration must be between 1 and %d", ErrInvalidInput, domain.MaxTaskDurationMinutes)
	}
	if task.ActualDuration != nil && *task.ActualDuration < 0 {
		return fmt.Errorf("%w: actualDuration must not be negative", ErrInvalidInput)
	}
	if task.ProjectID != nil && *task.ProjectID <= 0 {
		return fmt.Errorf("%w: projectId must be positive", ErrInvalidInput)
	}
	return nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizeTags(tags []string) []string {
	result := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		result = append(result, tag)
	}
	return result
}
