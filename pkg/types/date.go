package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// DateLayout is the wire and storage layout of Date.
const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date format, expected YYYY-MM-DD")

// Date is a calendar day without time of day or location.
// Internally it is midnight UTC of that day.
type Date struct {
	t time.Time
}

// NewDate truncates t to its calendar day in t's own location.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// DateOf builds a Date from components.
func DateOf(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{t: t}, nil
}

func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Time returns midnight UTC of the day.
func (d Date) Time() time.Time {
	return d.t
}

func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

func (d Date) Before(other Date) bool { return d.t.Before(other.t) }
func (d Date) After(other Date) bool  { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool  { return d.t.Equal(other.t) }

// Weekday returns the day of week.
func (d Date) Weekday() time.Weekday {
	return d.t.Weekday()
}

// StartOfWeek returns the Monday of d's week.
func (d Date) StartOfWeek() Date {
	offset := (int(d.t.Weekday()) + 6) % 7
	return d.AddDays(-offset)
}

// StartOfMonth returns the first day of d's month.
func (d Date) StartOfMonth() Date {
	return DateOf(d.t.Year(), d.t.Month(), 1)
}

// EndOfMonth returns the last day of d's month.
func (d Date) EndOfMonth() Date {
	return d.StartOfMonth().AddMonths(1).AddDays(-1)
}

func (d Date) AddMonths(n int) Date {
	return Date{t: d.t.AddDate(0, n, 0)}
}

func (d Date) String() string {
	if d.t.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Scan implements sql.Scanner for DATE (postgres) and TEXT (sqlite) columns.
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = NewDate(v)
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", value)
	}
}

func (d *Date) scanString(s string) error {
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer. A zero Date is stored as NULL.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}
