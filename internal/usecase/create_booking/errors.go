package create_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation возвращается при некорректной форме запроса
	ErrValidation = errors.New("create_booking: validation error")

	// ErrNotFound возвращается, когда одна из указанных сущностей не найдена
	ErrNotFound = errors.New("create_booking: not found")

	// ErrConflict возвращается, когда бизнес-правило запрещает бронирование
	ErrConflict = errors.New("create_booking: conflict")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// Сообщения для пользователя
const (
	MsgStationsRequired      = "At least one station is required"
	MsgTooManyStations       = "Too many stations selected"
	MsgTooManySalesItems     = "Too many services selected"
	MsgWindowRequired        = "Delivery window is required"
	MsgWindowInverted        = "Delivery window end must be after its start"
	MsgNotesTooLong          = "Customer notes are too long"
	MsgVehicleYearInvalid    = "Vehicle year is invalid"
	MsgStationsNotFound      = "One or more stations were not found"
	MsgStationsInactive      = "One or more selected stations are inactive"
	MsgLaneClosedFormat      = "Lane \"%s\" is closed for new bookings"
	MsgNoIntervals           = "No capacity intervals found for delivery window"
	MsgLookupFailed          = "Failed to prepare booking"
	MsgCreateBookingFailed   = "Failed to create booking"
	MsgCreateStationsFailed  = "Failed to create booking stations"
	MsgCreateIntervalsFailed = "Failed to create booking intervals"
	MsgCreateServicesFailed  = "Failed to record booking services"
)

// Error ошибка бронирования: категория, сообщение для пользователя и исходная причина
type Error struct {
	Kind    error
	Message string
	Err     error
}

func newError(kind error, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Message)
}

// Unwrap позволяет проверять и категорию, и причину через errors.Is
func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// KindLabel возвращает метку категории ошибки для метрик
func KindLabel(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrConflict):
		return "conflict"
	default:
		return "internal"
	}
}
