package create_task

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
	"github.com/m04kA/SMC-SmartScheduler/internal/scheduler"
)

// buildTask валидирует запрос и собирает задачу со значениями по умолчанию
func buildTask(req *Request) (*domain.Task, error) {
	task := &domain.Task{
		Title:             strings.TrimSpace(req.Title),
		Description:       req.Description,
		Status:            domain.TaskStatusPending,
		Priority:          domain.PriorityMedium,
		TaskType:          domain.TaskTypeTask,
		Category:          req.Category,
		Tags:              normalizeTags(req.Tags),
		EstimatedDuration: req.EstimatedDuration,
		ScheduledDate:     req.ScheduledDate,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		AllDay:            req.AllDay,
		DueDate:           req.DueDate,
		ProjectID:         req.ProjectID,
		Location:          req.Location,
		FocusTimeRequired: req.FocusTimeRequired,
		Notes:             req.Notes,
	}

	if req.Priority != "" {
		task.Priority = domain.TaskPriority(strings.ToLower(strings.TrimSpace(req.Priority)))
	}
	if req.TaskType != "" {
		task.TaskType = domain.TaskType(strings.ToLower(strings.TrimSpace(req.TaskType)))
	}
	if req.EnergyLevel != nil {
		level := domain.EnergyLevel(strings.ToLower(strings.TrimSpace(*req.EnergyLevel)))
		task.EnergyLevel = &level
	}

	if err := validateFields(task); err != nil {
		return nil, err
	}

	if err := resolveSchedule(task); err != nil {
		return nil, err
	}

	if task.ScheduledDate != nil && (task.StartTime != nil || task.AllDay) {
		task.Status = domain.TaskStatusScheduled
	}

	return task, nil
}

// validateFields проверяет поля, не связанные с расписанием
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
	if task.ProjectID != nil && *task.ProjectID <= 0 {
		return fmt.Errorf("%w: projectId must be positive", ErrInvalidInput)
	}
	return nil
}

// resolveSchedule проверяет дату и интервал. Конец без начала запрещен,
// начало без конца дополняется оценкой длительности.
func resolveSchedule(task *domain.Task) error {
	if task.AllDay {
		if task.ScheduledDate == nil {
			return fmt.Errorf("%w: all-day task needs scheduledDate", ErrInvalidInput)
		}
		task.StartTime = nil
		task.EndTime = nil
		return nil
	}

	if task.StartTime == nil {
		if task.EndTime != nil {
			return fmt.Errorf("%w: endTime without startTime", ErrInvalidInput)
		}
		return nil
	}

	if task.ScheduledDate == nil {
		return fmt.Errorf("%w: startTime needs scheduledDate", ErrInvalidInput)
	}

	if task.EndTime == nil {
		duration := domain.DefaultTaskDurationMinutes
		if task.EstimatedDuration != nil {
			duration = *task.EstimatedDuration
		}
		end, err := task.StartTime.AddMinutes(duration)
		if err != nil {
			return fmt.Errorf("%w: task does not fit into the day: %v", ErrInvalidInput, err)
		}
		task.EndTime = &end
	}

	if _, err := scheduler.NewTimeInterval(*task.StartTime, *task.EndTime); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return nil
}

// normalizeTags обрезает пробелы, убирает пустые и повторяющиеся теги
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
