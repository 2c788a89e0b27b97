package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SmartScheduler/pkg/ptr"
	"github.com/m04kA/SMC-SmartScheduler/pkg/types"
)

func timedTask(start, end string) *Task {
	s, _ := types.ParseTimeOfDay(start)
	e, _ := types.ParseTimeOfDay(end)
	return &Task{
		ID:            7,
		Status:        TaskStatusScheduled,
		ScheduledDate: ptr.Ptr(types.DateOf(2025, time.May, 5)),
		StartTime:     &s,
		EndTime:       &e,
	}
}

func TestTask_ToScheduledItem(t *testing.T) {
	task := timedTask("09:00", "10:30")

	item, ok := task.ToScheduledItem()
	require.True(t, ok)
	assert.Equal(t, int64(7), item.ID)
	assert.Equal(t, "09:00-10:30", item.Interval.String())
	assert.Equal(t, "2025-05-05", item.Date.String())

	task.AllDay = true
	_, ok = task.ToScheduledItem()
	assert.False(t, ok, "all-day tasks do not occupy an interval")
}

func TestTask_DurationMinutes(t *testing.T) {
	assert.Equal(t, 90, *timedTask("09:00", "10:30").DurationMinutes())

	estimated := &Task{EstimatedDuration: ptr.Ptr(25)}
	assert.Equal(t, 25, *estimated.DurationMinutes())

	assert.Nil(t, (&Task{}).DurationMinutes())
}

func TestTask_IsOverdue(t *testing.T) {
	now := time.Date(2025, 5, 5, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.True(t, (&Task{Status: TaskStatusPending, DueDate: &past}).IsOverdue(now))
	assert.False(t, (&Task{Status: TaskStatusPending, DueDate: &future}).IsOverdue(now))
	assert.False(t, (&Task{Status: TaskStatusCompleted, DueDate: &past}).IsOverdue(now))
	assert.False(t, (&Task{Status: TaskStatusCancelled, DueDate: &past}).IsOverdue(now))
	assert.False(t, (&Task{Status: TaskStatusPending}).IsOverdue(now))
}

func TestTask_TimeSlotLabel(t *testing.T) {
	assert.Equal(t, "09:00 - 10:30", timedTask("09:00", "10:30").TimeSlotLabel())
	assert.Equal(t, "All day", (&Task{AllDay: true}).TimeSlotLabel())
	assert.Equal(t, "", (&Task{}).TimeSlotLabel())
}

func TestTask_MarkCompleted(t *testing.T) {
	now := time.Now()
	task := &Task{Status: TaskStatusInProgress, ProgressPercentage: 40}
	task.MarkCompleted(now)

	assert.Equal(t, TaskStatusCompleted, task.Status)
	assert.Equal(t, MaxProgress, task.ProgressPercentage)
	require.NotNil(t, task.CompletedAt)
	assert.Equal(t, now, *task.CompletedAt)
}

func TestClampProgress(t *testing.T) {
	assert.Equal(t, 0.0, ClampProgress(-10))
	assert.Equal(t, 55.5, ClampProgress(55.5))
	assert.Equal(t, 100.0, ClampProgress(130))
}

func TestStatusValidation(t *testing.T) {
	assert.True(t, TaskStatusScheduled.IsValid())
	assert.False(t, TaskStatus("done").IsValid())
	assert.True(t, PriorityUrgent.IsValid())
	assert.False(t, TaskPriority("critical").IsValid())
	assert.True(t, DeadlineTypeProject.IsValid())
	assert.False(t, Recurrence("yearly").IsValid())
	assert.True(t, ProjectStatusOnHold.IsValid())
	assert.True(t, NotificationTypeDeadline.IsValid())
	assert.False(t, NotificationType("email").IsValid())
}

func TestDeadline_IsOverdueAndUpcoming(t *testing.T) {
	now := time.Date(2025, 5, 5, 12, 0, 0, 0, time.UTC)
	week := 7 * 24 * time.Hour

	overdue := &Deadline{DueDate: now.Add(-time.Minute)}
	assert.True(t, overdue.IsOverdue(now))
	assert.False(t, overdue.IsUpcoming(now, week))

	upcoming := &Deadline{DueDate: now.Add(48 * time.Hour)}
	assert.False(t, upcoming.IsOverdue(now))
	assert.True(t, upcoming.IsUpcoming(now, week))

	upcoming.Completed = true
	assert.False(t, upcoming.IsUpcoming(now, week))
}

func TestProject_DaysUntilDeadline(t *testing.T) {
	today := types.DateOf(2025, time.May, 5)
	p := &Project{Status: ProjectStatusActive, Deadline: ptr.Ptr(types.DateOf(2025, time.May, 12))}

	assert.Equal(t, 7, *p.DaysUntilDeadline(today))
	assert.False(t, p.IsOverdue(today))
	assert.True(t, p.IsOverdue(types.DateOf(2025, time.May, 13)))
	assert.Nil(t, (&Project{}).DaysUntilDeadline(today))
}

func TestProjectProgress(t *testing.T) {
	assert.Equal(t, 0.0, ProjectProgress(nil))

	tasks := []*Task{
		{Status: TaskStatusCompleted},
		{Status: TaskStatusPending},
		{Status: TaskStatusCompleted},
		{Status: TaskStatusCancelled},
	}
	assert.Equal(t, 50.0, ProjectProgress(tasks))
}

func TestConflictError(t *testing.T) {
	var err error = &ConflictError{Conflicts: []*Task{{ID: 1}, {ID: 2}}}

	assert.ErrorIs(t, err, ErrTimeConflict)
	assert.Contains(t, err.Error(), "2 conflicting task(s)")

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Len(t, conflict.Conflicts, 2)
}
