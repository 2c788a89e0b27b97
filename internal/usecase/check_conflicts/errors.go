package check_conflicts

import "errors"

var (
	// ErrInvalidInput возвращается при некорректном интервале или дате
	ErrInvalidInput = errors.New("check_conflicts: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_conflicts: internal error")
)
