package domain

import "time"

// DeadlineType describes what a deadline is attached to
type DeadlineType string

const (
	DeadlineTypeGeneral DeadlineType = "general"
	DeadlineTypeTask    DeadlineType = "task"
	DeadlineTypeProject DeadlineType = "project"
)

var AllDeadlineTypes = []DeadlineType{DeadlineTypeGeneral, DeadlineTypeTask, DeadlineTypeProject}

func (t DeadlineType) IsValid() bool {
	switch t {
	case DeadlineTypeGeneral, DeadlineTypeTask, DeadlineTypeProject:
		return true
	}
	return false
}

// Recurrence is stored for display only, instances are never materialized
type Recurrence string

const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
)

func (r Recurrence) IsValid() bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	}
	return false
}

// Deadline represents a due point in time, optionally tied to a task or project
type Deadline struct {
	ID                int64
	Title             string
	Description       *string
	Type              DeadlineType
	DueDate           time.Time
	Completed         bool
	CompletedAt       *time.Time
	Color             string
	TaskID            *int64
	ProjectID         *int64
	Recurrence        Recurrence
	RecurrenceEndDate *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsOverdue returns true if the deadline is still open and already due
func (d *Deadline) IsOverdue(now time.Time) bool {
	return !d.Completed && now.After(d.DueDate)
}

// IsUpcoming returns true if the deadline is open and due within the window
func (d *Deadline) IsUpcoming(now time.Time, window time.Duration) bool {
	return !d.Completed && !d.DueDate.Before(now) && d.DueDate.Before(now.Add(window))
}

// DeadlineAnalytics aggregates deadline counters
type DeadlineAnalytics struct {
	Total     int
	Completed int
	Overdue   int
	Upcoming  int
	ByType    map[DeadlineType]int
}

// DeadlineFilter filters deadline listings
type DeadlineFilter struct {
	From      *time.Time
	To        *time.Time
	Completed *bool
	Type      *DeadlineType
	ProjectID *int64
	TaskID    *int64
	Recurring bool
}
