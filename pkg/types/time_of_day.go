package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay is the number of minutes in a calendar day. 24:00 is a valid
// end-of-day boundary but never a valid start.
const MinutesPerDay = 24 * 60

var (
	// ErrInvalidTimeOfDay is returned when a value cannot be parsed as HH:MM.
	ErrInvalidTimeOfDay = errors.New("invalid time of day format, expected HH:MM")

	// ErrTimeOfDayOutOfRange is returned when arithmetic leaves the [00:00, 24:00] range.
	ErrTimeOfDayOutOfRange = errors.New("time of day out of range")
)

// TimeOfDay is a wall-clock time expressed as minutes since midnight.
type TimeOfDay int

// NewTimeOfDay builds a TimeOfDay from hour and minute components.
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %02d:%02d", ErrTimeOfDayOutOfRange, hour, minute)
	}
	t := TimeOfDay(hour*60 + minute)
	if !t.IsValid() {
		return 0, fmt.Errorf("%w: %02d:%02d", ErrTimeOfDayOutOfRange, hour, minute)
	}
	return t, nil
}

// MustTimeOfDay is NewTimeOfDay for constants and tests.
func MustTimeOfDay(hour, minute int) TimeOfDay {
	t, err := NewTimeOfDay(hour, minute)
	if err != nil {
		panic(err)
	}
	return t
}

// TimeOfDayFromTime takes the hour and minute of t in its own location.
func TimeOfDayFromTime(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

// ParseTimeOfDay parses "HH:MM" (seconds in "HH:MM:SS" are accepted and dropped).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	if len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}

	return NewTimeOfDay(hour, minute)
}

// Minutes returns the number of minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return int(t)
}

// IsValid reports whether t lies within [00:00, 24:00].
func (t TimeOfDay) IsValid() bool {
	return t >= 0 && t <= MinutesPerDay
}

// AddMinutes shifts t by n minutes. Crossing midnight is an error.
func (t TimeOfDay) AddMinutes(n int) (TimeOfDay, error) {
	result := t + TimeOfDay(n)
	if !result.IsValid() {
		return 0, fmt.Errorf("%w: %s %+d min", ErrTimeOfDayOutOfRange, t, n)
	}
	return result, nil
}

// Sub returns t - other in minutes.
func (t TimeOfDay) Sub(other TimeOfDay) int {
	return int(t - other)
}

func (t TimeOfDay) IsBefore(other TimeOfDay) bool {
	return t < other
}

func (t TimeOfDay) IsAfter(other TimeOfDay) bool {
	return t > other
}

// On places t on the given date in loc.
func (t TimeOfDay) On(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc).Add(time.Duration(t) * time.Minute)
}

// String formats t as HH:MM.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeOfDay, err)
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Scan implements sql.Scanner. Values are stored as INTEGER minutes.
func (t *TimeOfDay) Scan(value interface{}) error {
	switch v := value.(type) {
	case int64:
		*t = TimeOfDay(v)
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	case time.Time:
		*t = TimeOfDayFromTime(v)
	default:
		return fmt.Errorf("cannot scan %T into TimeOfDay", value)
	}
	if !t.IsValid() {
		return fmt.Errorf("%w: %d", ErrTimeOfDayOutOfRange, int(*t))
	}
	return nil
}

func (t *TimeOfDay) scanString(s string) error {
	if n, err := strconv.Atoi(s); err == nil {
		*t = TimeOfDay(n)
		return nil
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value implements driver.Valuer.
func (t TimeOfDay) Value() (driver.Value, error) {
	return int64(t), nil
}
