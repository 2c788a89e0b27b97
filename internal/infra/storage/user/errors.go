package user

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("user.repository: user not found")

	// ErrUserExists возвращается при нарушении уникальности username или email
	ErrUserExists = errors.New("user.repository: user already exists")

	ErrBuildQuery = errors.New("user.repository: failed to build query")
	ErrExecQuery  = errors.New("user.repository: failed to execute query")
	ErrScanRow    = errors.New("user.repository: failed to scan row")
)
