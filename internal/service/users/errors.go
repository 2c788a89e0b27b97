package users

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrUserExists возвращается, если username или email уже заняты
	ErrUserExists = errors.New("user already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
