package scheduler

import (
	"fmt"

	"github.com/m04kA/SMC-SmartScheduler/pkg/types"
)

// WorkWindow bounds the search for free slots.
type WorkWindow struct {
	Start types.TimeOfDay
	End   types.TimeOfDay
}

// DefaultWorkWindow is 09:00-17:00.
func DefaultWorkWindow() WorkWindow {
	return WorkWindow{Start: DefaultWorkStart, End: DefaultWorkEnd}
}

// Validate checks that the window is a non-empty span inside the day.
func (w WorkWindow) Validate() error {
	if !w.Start.IsValid() || !w.End.IsValid() {
		return fmt.Errorf("%w: work window %s-%s is outside of the day", ErrInvalidArgument, w.Start, w.End)
	}
	if !w.Start.IsBefore(w.End) {
		return fmt.Errorf("%w: work start %s must be before work end %s", ErrInvalidArgument, w.Start, w.End)
	}
	return nil
}

// FindAvailableSlots sweeps the work window once and proposes one slot of
// exactly durationMinutes at the start of every gap that is large enough.
//
// A gap before an item is measured up to that item's start, not to the end
// of the window, so such a slot may run past window.End. Only the trailing
// gap after the last item is bounded by window.End.
//
// existing must already be filtered to one date and sorted by interval start;
// it is not re-sorted here. Overlapping or nested items are tolerated: the
// cursor only ever moves forward, so no slot is proposed inside an occupied
// region.
func FindAvailableSlots(durationMinutes int, existing []ScheduledItem, window WorkWindow) ([]FreeSlot, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidArgument, durationMinutes)
	}
	if err := window.Validate(); err != nil {
		return nil, err
	}

	slots := make([]FreeSlot, 0)
	cursor := window.Start

	for _, item := range existing {
		if item.Interval.Start.IsAfter(cursor) && item.Interval.Start.Sub(cursor) >= durationMinutes {
			slot, err := newSlot(cursor, durationMinutes)
			if err != nil {
				return nil, err
			}
			slots = append(slots, slot)
		}
		if item.Interval.End.IsAfter(cursor) {
			cursor = item.Interval.End
		}
	}

	if cursor.IsBefore(window.End) && window.End.Sub(cursor) >= durationMinutes {
		slot, err := newSlot(cursor, durationMinutes)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

func newSlot(start types.TimeOfDay, durationMinutes int) (FreeSlot, error) {
	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return FreeSlot{}, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return FreeSlot{Interval: TimeInterval{Start: start, End: end}}, nil
}
