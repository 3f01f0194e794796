package identity

import "errors"

var (
	// ErrUnauthorized возвращается, когда токен отсутствует, невалиден или истек
	ErrUnauthorized = errors.New("identity: unauthorized")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("identity client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса идентификации
	ErrInvalidResponse = errors.New("identity client: invalid response")
)
