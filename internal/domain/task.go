package domain

import (
	"time"

	"github.com/m04kA/SMC-SmartScheduler/internal/scheduler"
	"github.com/m04kA/SMC-SmartScheduler/pkg/types"
)

// TaskStatus represents the lifecycle state of a task
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
	TaskStatusScheduled  TaskStatus = "scheduled"
)

// AllTaskStatuses lists every known status in display order
var AllTaskStatuses = []TaskStatus{
	TaskStatusPending,
	TaskStatusScheduled,
	TaskStatusInProgress,
	TaskStatusCompleted,
	TaskStatusCancelled,
}

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled, TaskStatusScheduled:
		return true
	}
	return false
}

// IsOpen returns true for statuses that still occupy the schedule
func (s TaskStatus) IsOpen() bool {
	return s != TaskStatusCompleted && s != TaskStatusCancelled
}

// TaskPriority represents task urgency
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

func (p TaskPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// HighPriorities are counted as "high priority" in statistics
var HighPriorities = []TaskPriority{PriorityHigh, PriorityUrgent}

// TaskType classifies a task
type TaskType string

const (
	TaskTypeTask      TaskType = "task"
	TaskTypeProject   TaskType = "project"
	TaskTypeMilestone TaskType = "milestone"
	TaskTypeReminder  TaskType = "reminder"
)

func (t TaskType) IsValid() bool {
	switch t {
	case TaskTypeTask, TaskTypeProject, TaskTypeMilestone, TaskTypeReminder:
		return true
	}
	return false
}

// EnergyLevel hints how demanding a task is
type EnergyLevel string

const (
	EnergyLow    EnergyLevel = "low"
	EnergyMedium EnergyLevel = "medium"
	EnergyHigh   EnergyLevel = "high"
)

func (e EnergyLevel) IsValid() bool {
	switch e {
	case EnergyLow, EnergyMedium, EnergyHigh:
		return true
	}
	return false
}

// Task represents a unit of work that may be placed on the calendar
type Task struct {
	ID          int64
	Title       string
	Description *string
	Status      TaskStatus
	Priority    TaskPriority
	TaskType    TaskType
	Category    *string
	Tags        []string

	EstimatedDuration *int // minutes
	ActualDuration    *int // minutes

	ScheduledDate *types.Date
	StartTime     *types.TimeOfDay
	EndTime       *types.TimeOfDay
	AllDay        bool

	DueDate     *time.Time
	CompletedAt *time.Time

	ProjectID          *int64
	ProgressPercentage float64

	Location          *string
	EnergyLevel       *EnergyLevel
	FocusTimeRequired bool
	Notes             *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the task is not cancelled
func (t *Task) IsActive() bool {
	return t.Status != TaskStatusCancelled
}

// IsTimed returns true if the task occupies a concrete interval on a date
func (t *Task) IsTimed() bool {
	return t.ScheduledDate != nil && t.StartTime != nil && t.EndTime != nil && !t.AllDay
}

// Interval returns the scheduled interval of a timed task
func (t *Task) Interval() (scheduler.TimeInterval, bool) {
	if !t.IsTimed() {
		return scheduler.TimeInterval{}, false
	}
	return scheduler.TimeInterval{Start: *t.StartTime, End: *t.EndTime}, true
}

// ToScheduledItem converts a timed task into scheduler input
func (t *Task) ToScheduledItem() (scheduler.ScheduledItem, bool) {
	interval, ok := t.Interval()
	if !ok {
		return scheduler.ScheduledItem{}, false
	}
	return scheduler.ScheduledItem{
		ID:       t.ID,
		Date:     *t.ScheduledDate,
		Interval: interval,
		Status:   string(t.Status),
	}, true
}

// DurationMinutes derives duration from the interval, falling back to the estimate
func (t *Task) DurationMinutes() *int {
	if t.StartTime != nil && t.EndTime != nil && t.StartTime.IsBefore(*t.EndTime) {
		d := t.EndTime.Sub(*t.StartTime)
		return &d
	}
	return t.EstimatedDuration
}

// IsOverdue returns true if the task is open and its due date has passed
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || !t.Status.IsOpen() {
		return false
	}
	return now.After(*t.DueDate)
}

// IsOn returns true if the task is scheduled for the given date
func (t *Task) IsOn(date types.Date) bool {
	return t.ScheduledDate != nil && t.ScheduledDate.Equal(date)
}

// TimeSlotLabel renders the schedule for display: "All day", "09:00 - 10:30" or "09:00"
func (t *Task) TimeSlotLabel() string {
	switch {
	case t.AllDay:
		return "All day"
	case t.StartTime != nil && t.EndTime != nil:
		return t.StartTime.String() + " - " + t.EndTime.String()
	case t.StartTime != nil:
		return t.StartTime.String()
	default:
		return ""
	}
}

// MarkCompleted sets completion fields
func (t *Task) MarkCompleted(now time.Time) {
	t.Status = TaskStatusCompleted
	t.CompletedAt = &now
	t.ProgressPercentage = MaxProgress
}

// ClampProgress bounds a progress value to [0, 100]
func ClampProgress(progress float64) float64 {
	if progress < MinProgress {
		return MinProgress
	}
	if progress > MaxProgress {
		return MaxProgress
	}
	return progress
}

// TaskStats aggregates task counters
type TaskStats struct {
	Total          int
	Pending        int
	InProgress     int
	Completed      int
	Scheduled      int
	Cancelled      int
	HighPriority   int
	TodayTasks     int
	Overdue        int
	CompletionRate float64
}

// TaskFilter filters task listings
type TaskFilter struct {
	Status    *TaskStatus
	Priority  *TaskPriority
	Category  *string
	ProjectID *int64
	DateFrom  *types.Date
	DateTo    *types.Date
	Search    *string
	Limit     int
	Offset    int
}
