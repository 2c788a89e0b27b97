package domain

import (
	"errors"
	"fmt"
)

// ErrTimeConflict is returned when a timed task overlaps active tasks on the same date
var ErrTimeConflict = errors.New("time conflict with existing tasks")

// ConflictError carries the tasks that block a candidate interval.
// errors.Is(err, ErrTimeConflict) holds for it.
type ConflictError struct {
	Conflicts []*Task
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %d conflicting task(s)", ErrTimeConflict, len(e.Conflicts))
}

func (e *ConflictError) Unwrap() error {
	return ErrTimeConflict
}
