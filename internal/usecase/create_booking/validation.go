package create_booking

import (
	"github.com/m04kA/SMC-LaneBooking/internal/domain"
)

const (
	minVehicleYear = 1900
	maxVehicleYear = 2100
)

// validateRequest валидирует форму запроса до обращения к БД
func validateRequest(req *Request) error {
	if len(req.StationIDs) == 0 {
		return newError(ErrValidation, MsgStationsRequired, nil)
	}

	if len(req.StationIDs) > domain.MaxStationsPerBooking {
		return newError(ErrValidation, MsgTooManyStations, nil)
	}

	if len(req.SalesItemIDs) > domain.MaxSalesItemsPerBooking {
		return newError(ErrValidation, MsgTooManySalesItems, nil)
	}

	if req.DeliveryWindowStartsAt == nil || req.DeliveryWindowEndsAt == nil ||
		req.DeliveryWindowStartsAt.IsZero() || req.DeliveryWindowEndsAt.IsZero() {
		return newError(ErrValidation, MsgWindowRequired, nil)
	}

	// Пустое окно дало бы деление на ноль при распределении
	if !req.DeliveryWindowEndsAt.After(*req.DeliveryWindowStartsAt) {
		return newError(ErrValidation, MsgWindowInverted, nil)
	}

	if req.CustomerNotes != nil && len([]rune(*req.CustomerNotes)) > domain.MaxNotesLength {
		return newError(ErrValidation, MsgNotesTooLong, nil)
	}

	if req.VehicleYear != nil && (*req.VehicleYear < minVehicleYear || *req.VehicleYear > maxVehicleYear) {
		return newError(ErrValidation, MsgVehicleYearInvalid, nil)
	}

	return nil
}
