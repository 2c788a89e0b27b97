package project

import "errors"

var (
	// ErrProjectNotFound возвращается, когда проект не найден
	ErrProjectNotFound = errors.New("project.repository: project not found")

	ErrBuildQuery = errors.New("project.repository: failed to build query")
	ErrExecQuery  = errors.New("project.repository: failed to execute query")
	ErrScanRow    = errors.New("project.repository: failed to scan row")
)
