package update_task

import (
	"time"

	"github.com/m04kA/SMC-SmartScheduler/pkg/types"
)

// Request модель запроса на частичное обновление задачи.
// nil означает "не менять".
type Request struct {
	TaskID int64

	Title             *string
	Description       *string
	Status            *string
	Priority          *string
	TaskType          *string
	Category          *string
	Tags              *[]string
	EstimatedDuration *int
	ActualDuration    *int

	ScheduledDate *types.Date
	StartTime     *types.TimeOfDay
	EndTime       *types.TimeOfDay
	AllDay        *bool
	ClearSchedule bool // Снять задачу с календаря

	DueDate            *time.Time
	ProjectID          *int64
	ProgressPercentage *float64
	Location           *string
	EnergyLevel        *string
	FocusTimeRequired  *bool
	Notes              *string
}
