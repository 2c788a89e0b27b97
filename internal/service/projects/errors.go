package projects

import "errors"

var (
	// ErrProjectNotFound возвращается, когда проект не найден
	ErrProjectNotFound = errors.New("project not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
