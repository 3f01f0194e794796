package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-LaneBooking/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID       uuid.UUID   // ID пользователя из токена
	StationIDs   []uuid.UUID // Станции в порядке посещения
	SalesItemIDs []uuid.UUID // Купленные позиции каталога

	DeliveryWindowStartsAt *time.Time
	DeliveryWindowEndsAt   *time.Time

	AddressID           *uuid.UUID
	VehicleMake         *string
	VehicleModel        *string
	VehicleYear         *int
	VehicleRegistration *string
	CustomerNotes       *string
}

// Response модель ответа с созданным бронированием
type Response struct {
	BookingID          uuid.UUID
	Status             domain.BookingStatus
	LaneID             uuid.UUID
	ServiceTimeSeconds int
}
