package create_task

import (
	"time"

	"github.com/m04kA/SMC-SmartScheduler/pkg/types"
)

// Request модель запроса на создание задачи
type Request struct {
	Title             string
	Description       *string
	Priority          string // medium по умолчанию
	TaskType          string // task по умолчанию
	Category          *string
	Tags              []string
	EstimatedDuration *int // Минуты

	ScheduledDate *types.Date
	StartTime     *types.TimeOfDay
	EndTime       *types.TimeOfDay // Без конца: начало + оценка длительности
	AllDay        bool

	DueDate           *time.Time
	ProjectID         *int64
	Location          *string
	EnergyLevel       *string
	FocusTimeRequired bool
	Notes             *string
}
