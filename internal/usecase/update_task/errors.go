package update_task

import "errors"

var (
	// ErrTaskNotFound возвращается, когда задача не найдена
	ErrTaskNotFound = errors.New("update_task: task not found")

	// ErrProjectNotFound возвращается, когда указанный проект не найден
	ErrProjectNotFound = errors.New("update_task: project not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_task: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_task: internal error")
)
