package models

import (
	"time"

	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
)

// Request модели

// CreateDeadlineRequest запрос на создание дедлайна
type CreateDeadlineRequest struct {
	Title             string     `json:"title"`
	Description       *string    `json:"description,omitempty"`
	Type              string     `json:"type,omitempty"` // general по умолчанию
	DueDate           time.Time  `json:"dueDate"`
	Color             *string    `json:"color,omitempty"`
	TaskID            *int64     `json:"taskId,omitempty"`
	ProjectID         *int64     `json:"projectId,omitempty"`
	Recurrence        string     `json:"recurrence,omitempty"` // none по умолчанию
	RecurrenceEndDate *time.Time `json:"recurrenceEndDate,omitempty"`
}

// UpdateDeadlineRequest запрос на обновление дедлайна.
// Обновляются только переданные поля.
type UpdateDeadlineRequest struct {
	Title             *string    `json:"title,omitempty"`
	Description       *string    `json:"description,omitempty"`
	Type              *string    `json:"type,omitempty"`
	DueDate           *time.Time `json:"dueDate,omitempty"`
	Color             *string    `json:"color,omitempty"`
	Completed         *bool      `json:"completed,omitempty"`
	Recurrence        *string    `json:"recurrence,omitempty"`
	RecurrenceEndDate *time.Time `json:"recurrenceEndDate,omitempty"`
}

// ExtendDeadlineRequest запрос на перенос срока
type ExtendDeadlineRequest struct {
	NewDueDate time.Time `json:"newDueDate"`
}

// ListDeadlinesRequest фильтры списка дедлайнов
type ListDeadlinesRequest struct {
	From      *time.Time
	To        *time.Time
	Completed *bool
	Type      *string
	ProjectID *int64
}

// Response модели

// DeadlineResponse ответ с данными дедлайна
type DeadlineResponse struct {
	ID                int64      `json:"id"`
	Title             string     `json:"title"`
	Description       *string    `json:"description,omitempty"`
	Type              string     `json:"type"`
	DueDate           time.Time  `json:"dueDate"`
	Completed         bool       `json:"completed"`
	CompletedAt       *time.Time `json:"completedAt,omitempty"`
	Color             string     `json:"color"`
	TaskID            *int64     `json:"taskId,omitempty"`
	ProjectID         *int64     `json:"projectId,omitempty"`
	Recurrence        string     `json:"recurrence"`
	RecurrenceEndDate *time.Time `json:"recurrenceEndDate,omitempty"`
	IsOverdue         bool       `json:"isOverdue"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// DeadlineListResponse ответ со списком дедлайнов
type DeadlineListResponse struct {
	Deadlines []DeadlineResponse `json:"deadlines"`
	Total     int                `json:"total"`
}

// AnalyticsResponse сводка по дедлайнам
type AnalyticsResponse struct {
	Total     int            `json:"total"`
	Completed int            `json:"completed"`
	Overdue   int            `json:"overdue"`
	Upcoming  int            `json:"upcoming"`
	ByType    map[string]int `json:"byType"`
}

// FromDomainDeadline конвертирует domain модель в DTO
func FromDomainDeadline(d *domain.Deadline, now time.Time) *DeadlineResponse {
	if d == nil {
		return nil
	}

	return &DeadlineResponse{
		ID:                d.ID,
		Title:             d.Title,
		Description:       d.Description,
		Type:              string(d.Type),
		DueDate:           d.DueDate,
		Completed:         d.Completed,
		CompletedAt:       d.CompletedAt,
		Color:             d.Color,
		TaskID:            d.TaskID,
		ProjectID:         d.ProjectID,
		Recurrence:        string(d.Recurrence),
		RecurrenceEndDate: d.RecurrenceEndDate,
		IsOverdue:         d.IsOverdue(now),
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

// FromDomainDeadlineList конвертирует список domain моделей в DTO
func FromDomainDeadlineList(deadlines []*domain.Deadline, now time.Time) *DeadlineListResponse {
	resp := &DeadlineListResponse{
		Deadlines: make([]DeadlineResponse, 0, len(deadlines)),
	}
	for _, d := range deadlines {
		resp.Deadlines = append(resp.Deadlines, *FromDomainDeadline(d, now))
	}
	resp.Total = len(resp.Deadlines)
	return resp
}

// FromDomainAnalytics конвертирует аналитику в DTO
func FromDomainAnalytics(a *domain.DeadlineAnalytics) *AnalyticsResponse {
	resp := &AnalyticsResponse{
		Total:     a.Total,
		Completed: a.Completed,
		Overdue:   a.Overdue,
		Upcoming:  a.Upcoming,
		ByType:    make(map[string]int, len(a.ByType)),
	}
	for t, count := range a.ByType {
		resp.ByType[string(t)] = count
	}
	return resp
}
