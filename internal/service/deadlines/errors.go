package deadlines

import "errors"

var (
	// ErrDeadlineNotFound возвращается, когда дедлайн не найден
	ErrDeadlineNotFound = errors.New("deadline not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
