// Package scheduler answers two questions about a single day's timetable:
// whether a candidate interval collides with already scheduled items, and
// which free intervals of a given length remain inside a work-day window.
//
// All functions are pure. They never read storage, never mutate their
// inputs and are safe for concurrent use.
package scheduler

import (
	"fmt"

	"github.com/m04kA/SMC-SmartScheduler/pkg/types"
)

// Default work-day window.
var (
	DefaultWorkStart = types.MustTimeOfDay(9, 0)
	DefaultWorkEnd   = types.MustTimeOfDay(17, 0)
)

// TimeInterval is a half-open span [Start, End) within one calendar day.
type TimeInterval struct {
	Start types.TimeOfDay
	End   types.TimeOfDay
}

// NewTimeInterval validates and builds an interval.
func NewTimeInterval(start, end types.TimeOfDay) (TimeInterval, error) {
	iv := TimeInterval{Start: start, End: end}
	if err := iv.Validate(); err != nil {
		return TimeInterval{}, err
	}
	return iv, nil
}

// Validate checks Start < End and that both ends lie inside the day.
func (iv TimeInterval) Validate() error {
	if !iv.Start.IsValid() || !iv.End.IsValid() {
		return fmt.Errorf("%w: interval %s-%s is outside of the day", ErrInvalidArgument, iv.Start, iv.End)
	}
	if !iv.Start.IsBefore(iv.End) {
		return fmt.Errorf("%w: interval start %s must be before end %s", ErrInvalidArgument, iv.Start, iv.End)
	}
	return nil
}

// Duration returns the length in minutes.
func (iv TimeInterval) Duration() int {
	return iv.End.Sub(iv.Start)
}

// Overlaps reports whether the two half-open intervals share at least one minute.
// Intervals that only touch at an endpoint do not overlap.
func (iv TimeInterval) Overlaps(other TimeInterval) bool {
	return iv.Start.IsBefore(other.End) && other.Start.IsBefore(iv.End)
}

func (iv TimeInterval) String() string {
	return iv.Start.String() + "-" + iv.End.String()
}

// ScheduledItem is an already-booked interval on some date.
type ScheduledItem struct {
	ID       int64
	Date     types.Date
	Interval TimeInterval
	Status   string
}

// FreeSlot is a free interval of exactly the requested duration.
type FreeSlot struct {
	Interval TimeInterval
}
