package get_lane_capacity

import "errors"

var (
	// ErrLaneNotFound возвращается, когда линия не найдена
	ErrLaneNotFound = errors.New("lane not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrRangeTooLong возвращается, когда запрошенный период превышает допустимый
	ErrRangeTooLong = errors.New("requested range is too long")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
