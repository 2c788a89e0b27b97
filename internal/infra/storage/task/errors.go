package task

import "errors"

var (
	// ErrTaskNotFound возвращается, когда задача не найдена
	ErrTaskNotFound = errors.New("task.repository: task not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("task.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("task.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("task.repository: failed to scan row")

	// ErrEncodeTags возвращается, если теги не удалось сериализовать
	ErrEncodeTags = errors.New("task.repository: failed to encode tags")
)
