package scheduler

import "errors"

// ErrInvalidArgument is returned for malformed intervals, non-positive
// durations and inverted work-day windows.
var ErrInvalidArgument = errors.New("scheduler: invalid argument")
