package domain

import "time"

// NotificationType is the kind of object a notification points at
type NotificationType string

const (
	NotificationTypeTask     NotificationType = "task"
	NotificationTypeDeadline NotificationType = "deadline"
)

func (t NotificationType) IsValid() bool {
	return t == NotificationTypeTask || t == NotificationTypeDeadline
}

// Notification is a stored reminder. Delivery is out of scope: "sent" is a flag
// set by whoever delivers it.
type Notification struct {
	ID            int64
	UserID        *int64
	Type          NotificationType
	TargetID      int64
	Message       string
	ScheduledTime time.Time
	Sent          bool
	Read          bool
	CreatedAt     time.Time
}

// NotificationFilter filters notification listings
type NotificationFilter struct {
	UserID   *int64
	Sent     *bool
	Read     *bool
	Upcoming bool // only scheduled_time >= now
	Now      time.Time
	Limit    int
}
