package domain

import "time"

// User identifies whose settings and notifications are used.
// There is no authentication: the id comes from the X-User-ID header.
type User struct {
	ID        int64
	Username  string
	Email     string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
