package create_task

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_task: invalid input data")

	// ErrProjectNotFound возвращается, когда указанный проект не найден
	ErrProjectNotFound = errors.New("create_task: project not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_task: internal error")
)
