package domain

// Default values
const (
	DefaultTaskDurationMinutes = 60
	DefaultDeadlineColor       = "#EF4444"
	DefaultProjectColor        = "#3B82F6"
	DefaultUpcomingDays        = 7
	DefaultListLimit           = 100
)

// Business validation constants
const (
	MinProgress            = 0.0
	MaxProgress            = 100.0
	MaxTitleLength         = 200
	MaxDescriptionLength   = 5000
	MaxNotesLength         = 5000
	MaxTagCount            = 20
	MaxTaskDurationMinutes = 24 * 60
	MaxListLimit           = 1000
	MaxNotificationMessage = 1000
	MaxUpcomingDays        = 365
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveTaskStatuses statuses excluded from conflict checks and free slot search
var InactiveTaskStatuses = []TaskStatus{
	TaskStatusCancelled,
}

// ClosedTaskStatuses statuses excluded from overdue and open counters
var ClosedTaskStatuses = []TaskStatus{
	TaskStatusCompleted,
	TaskStatusCancelled,
}
