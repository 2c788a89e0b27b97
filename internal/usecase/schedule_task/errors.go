package schedule_task

import "errors"

var (
	// ErrTaskNotFound возвращается, когда задача не найдена
	ErrTaskNotFound = errors.New("schedule_task: task not found")

	// ErrTaskClosed возвращается при попытке запланировать завершенную или отмененную задачу
	ErrTaskClosed = errors.New("schedule_task: task is completed or cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("schedule_task: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("schedule_task: internal error")
)
