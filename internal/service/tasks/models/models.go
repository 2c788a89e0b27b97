package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
	"github.com/m04kA/SMC-SmartScheduler/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid task status")

	// ErrInvalidPriority возвращается при некорректном приоритете
	ErrInvalidPriority = errors.New("invalid task priority")

	// ErrInvalidDate возвращается при некорректной дате фильтра
	ErrInvalidDate = errors.New("invalid date")
)

// Request модели

// ListTasksRequest фильтры списка задач. Пустые поля не фильтруют.
type ListTasksRequest struct {
	Status    *string `json:"status,omitempty"`
	Priority  *string `json:"priority,omitempty"`
	Category  *string `json:"category,omitempty"`
	ProjectID *int64  `json:"projectId,omitempty"`
	DateFrom  *string `json:"dateFrom,omitempty"` // "2025-05-01"
	DateTo    *string `json:"dateTo,omitempty"`
	Search    *string `json:"search,omitempty"`
	Limit     int     `json:"limit,omitempty"`
	Offset    int     `json:"offset,omitempty"`
}

// UpdateStatusRequest запрос на смену статуса
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateProgressRequest запрос на обновление прогресса
type UpdateProgressRequest struct {
	Progress float64 `json:"progress"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListTasksRequest) ToDomainFilter() (domain.TaskFilter, error) {
	filter := domain.TaskFilter{
		Category:  r.Category,
		ProjectID: r.ProjectID,
		Search:    r.Search,
		Limit:     r.Limit,
		Offset:    r.Offset,
	}

	if r.Status != nil {
		status, err := ToDomainTaskStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	if r.Priority != nil {
		priority, err := ToDomainTaskPriority(*r.Priority)
		if err != nil {
			return filter, err
		}
		filter.Priority = &priority
	}

	if r.DateFrom != nil {
		d, err := types.ParseDate(*r.DateFrom)
		if err != nil {
			return filter, fmt.Errorf("%w: dateFrom: %v", ErrInvalidDate, err)
		}
		filter.DateFrom = &d
	}
	if r.DateTo != nil {
		d, err := types.ParseDate(*r.DateTo)
		if err != nil {
			return filter, fmt.Errorf("%w: dateTo: %v", ErrInvalidDate, err)
		}
		filter.DateTo = &d
	}

	return filter, nil
}

// ToDomainTaskStatus конвертирует строку в статус задачи
func ToDomainTaskStatus(s string) (domain.TaskStatus, error) {
	status := domain.TaskStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}

// ToDomainTaskPriority конвертирует строку в приоритет задачи
func ToDomainTaskPriority(s string) (domain.TaskPriority, error) {
	priority := domain.TaskPriority(strings.ToLower(strings.TrimSpace(s)))
	if !priority.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, s)
	}
	return priority, nil
}

// Response модели

// TaskResponse ответ с данными задачи
type TaskResponse struct {
	ID                 int64      `json:"id"`
	Title              string     `json:"title"`
	Description        *string    `json:"description,omitempty"`
	Status             string     `json:"status"`
	Priority           string     `json:"priority"`
	TaskType           string     `json:"taskType"`
	Category           *string    `json:"category,omitempty"`
	Tags               []string   `json:"tags"`
	EstimatedDuration  *int       `json:"estimatedDuration,omitempty"`
	ActualDuration     *int       `json:"actualDuration,omitempty"`
	ScheduledDate      *string    `json:"scheduledDate,omitempty"` // "2025-05-05"
	StartTime          *string    `json:"startTime,omitempty"`     // "09:00"
	EndTime            *string    `json:"endTime,omitempty"`
	AllDay             bool       `json:"allDay"`
	TimeSlot           string     `json:"timeSlot,omitempty"`
	DurationMinutes    *int       `json:"durationMinutes,omitempty"`
	DueDate            *time.Time `json:"dueDate,omitempty"`
	CompletedAt        *time.Time `json:"completedAt,omitempty"`
	ProjectID          *int64     `json:"projectId,omitempty"`
	ProgressPercentage float64    `json:"progressPercentage"`
	Location           *string    `json:"location,omitempty"`
	EnergyLevel        *string    `json:"energyLevel,omitempty"`
	FocusTimeRequired  bool       `json:"focusTimeRequired"`
	Notes              *string    `json:"notes,omitempty"`
	IsOverdue          bool       `json:"isOverdue"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// TaskListResponse ответ со списком задач
type TaskListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total"`
}

// StatsResponse статистика по задачам
type StatsResponse struct {
	TotalTasks     int     `json:"totalTasks"`
	Pending        int     `json:"pending"`
	InProgress     int     `json:"inProgress"`
	Completed      int     `json:"completed"`
	Scheduled      int     `json:"scheduled"`
	Cancelled      int     `json:"cancelled"`
	HighPriority   int     `json:"highPriority"`
	TodayTasks     int     `json:"todayTasks"`
	Overdue        int     `json:"overdue"`
	CompletionRate float64 `json:"completionRate"`
}

// CalendarResponse задачи месяца, сгруппированные по дате
type CalendarResponse struct {
	Year  int                       `json:"year"`
	Month int                       `json:"month"`
	Days  map[string][]TaskResponse `json:"days"`
}

// Методы конвертации

// FromDomainTask конвертирует domain модель в DTO
func FromDomainTask(t *domain.Task, now time.Time) *TaskResponse {
	if t == nil {
		return nil
	}

	resp := &TaskResponse{
		ID:                 t.ID,
		Title:              t.Title,
		Description:        t.Description,
		Status:             string(t.Status),
		Priority:           string(t.Priority),
		TaskType:           string(t.TaskType),
		Category:           t.Category,
		Tags:               t.Tags,
		EstimatedDuration:  t.EstimatedDuration,
		ActualDuration:     t.ActualDuration,
		AllDay:             t.AllDay,
		TimeSlot:           t.TimeSlotLabel(),
		DurationMinutes:    t.DurationMinutes(),
		DueDate:            t.DueDate,
		CompletedAt:        t.CompletedAt,
		ProjectID:          t.ProjectID,
		ProgressPercentage: t.ProgressPercentage,
		Location:           t.Location,
		FocusTimeRequired:  t.FocusTimeRequired,
		Notes:              t.Notes,
		IsOverdue:          t.IsOverdue(now),
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}

	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	if t.ScheduledDate != nil {
		s := t.ScheduledDate.String()
		resp.ScheduledDate = &s
	}
	if t.StartTime != nil {
		s := t.StartTime.String()
		resp.StartTime = &s
	}
	if t.EndTime != nil {
		s := t.EndTime.String()
		resp.EndTime = &s
	}
	if t.EnergyLevel != nil {
		s := string(*t.EnergyLevel)
		resp.EnergyLevel = &s
	}

	return resp
}

// FromDomainTaskList конвертирует список domain моделей в DTO
func FromDomainTaskList(tasks []*domain.Task, now time.Time) *TaskListResponse {
	resp := &TaskListResponse{
		Tasks: make([]TaskResponse, 0, len(tasks)),
	}

	for _, t := range tasks {
		if taskResp := FromDomainTask(t, now); taskResp != nil {
			resp.Tasks = append(resp.Tasks, *taskResp)
		}
	}
	resp.Total = len(resp.Tasks)

	return resp
}

// FromDomainStats конвертирует статистику в DTO
func FromDomainStats(s *domain.TaskStats) *StatsResponse {
	return &StatsResponse{
		TotalTasks:     s.Total,
		Pending:        s.Pending,
		InProgress:     s.InProgress,
		Completed:      s.Completed,
		Scheduled:      s.Scheduled,
		Cancelled:      s.Cancelled,
		HighPriority:   s.HighPriority,
		TodayTasks:     s.TodayTasks,
		Overdue:        s.Overdue,
		CompletionRate: s.CompletionRate,
	}
}
