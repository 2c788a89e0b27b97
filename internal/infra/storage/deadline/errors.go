package deadline

import "errors"

var (
	// ErrDeadlineNotFound возвращается, когда дедлайн не найден
	ErrDeadlineNotFound = errors.New("deadline.repository: deadline not found")

	ErrBuildQuery = errors.New("deadline.repository: failed to build query")
	ErrExecQuery  = errors.New("deadline.repository: failed to execute query")
	ErrScanRow    = errors.New("deadline.repository: failed to scan row")
)
