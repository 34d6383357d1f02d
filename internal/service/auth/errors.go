package auth

import "errors"

var (
	// ErrEmailTaken возвращается при регистрации с занятым email
	ErrEmailTaken = errors.New("email already taken")

	// ErrInvalidCredentials возвращается при неверном email или пароле
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("auth service: internal error")
)
