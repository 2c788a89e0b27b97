package models

import (
	"time"

	"github.com/m04kA/SMC-SmartScheduler/pkg/types"
)

// Виды элементов ленты
const (
	ItemKindTask     = "task"
	ItemKindDeadline = "deadline"
)

// FeedRequest фильтры ленты расписания
type FeedRequest struct {
	StartDate types.Date
	EndDate   types.Date
	Type      *string // task | deadline, пусто - оба
	Status    *string // статус задачи
	Category  *string
	ProjectID *int64
	Completed *bool // фильтр для дедлайнов
}

// FeedItem элемент ленты: задача или дедлайн
type FeedItem struct {
	Kind      string           `json:"kind"`
	ID        int64            `json:"id"`
	Title     string           `json:"title"`
	At        time.Time        `json:"at"`
	Date      types.Date       `json:"date"`
	StartTime *types.TimeOfDay `json:"startTime,omitempty"`
	EndTime   *types.TimeOfDay `json:"endTime,omitempty"`
	AllDay    bool             `json:"allDay"`
	Status    string           `json:"status,omitempty"`
	Priority  string           `json:"priority,omitempty"`
	Category  *string          `json:"category,omitempty"`
	Color     string           `json:"color,omitempty"`
	ProjectID *int64           `json:"projectId,omitempty"`
	Completed bool             `json:"completed"`
	IsOverdue bool             `json:"isOverdue"`
}

// FeedResponse ответ с лентой расписания
type FeedResponse struct {
	StartDate types.Date `json:"startDate"`
	EndDate   types.Date `json:"endDate"`
	Items     []FeedItem `json:"items"`
	Total     int        `json:"total"`
}
