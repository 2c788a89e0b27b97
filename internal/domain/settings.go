package domain

import (
	"time"

	"github.com/m04kA/SMC-SmartScheduler/internal/scheduler"
	"github.com/m04kA/SMC-SmartScheduler/pkg/types"
)

// ScheduleSettings per-user work-day window and default task length.
// Users without stored settings get the configured defaults.
type ScheduleSettings struct {
	ID                     int64
	UserID                 int64
	WorkStart              types.TimeOfDay
	WorkEnd                types.TimeOfDay
	DefaultDurationMinutes int
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// IsDefault returns true if the settings were not loaded from storage
func (s *ScheduleSettings) IsDefault() bool {
	return s.ID == 0
}

// WorkWindow converts the settings into scheduler input
func (s *ScheduleSettings) WorkWindow() scheduler.WorkWindow {
	return scheduler.WorkWindow{Start: s.WorkStart, End: s.WorkEnd}
}

// DefaultScheduleSettings builds settings from defaults for a user
func DefaultScheduleSettings(userID int64, workStart, workEnd types.TimeOfDay, durationMinutes int) *ScheduleSettings {
	return &ScheduleSettings{
		UserID:                 userID,
		WorkStart:              workStart,
		WorkEnd:                workEnd,
		DefaultDurationMinutes: durationMinutes,
	}
}
