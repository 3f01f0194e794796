package create_booking

import (
	"time"

	"github.com/google/uuid"

	createBooking "github.com/m04kA/SMC-LaneBooking/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	SalesItemIDs           []uuid.UUID `json:"sales_item_ids"`
	StationIDs             []uuid.UUID `json:"station_ids"`
	DeliveryWindowStartsAt *time.Time  `json:"delivery_window_starts_at"`
	DeliveryWindowEndsAt   *time.Time  `json:"delivery_window_ends_at"`
	AddressID              *uuid.UUID  `json:"address_id,omitempty"`
	VehicleMake            *string     `json:"vehicle_make,omitempty"`
	VehicleModel           *string     `json:"vehicle_model,omitempty"`
	VehicleYear            *int        `json:"vehicle_year,omitempty"`
	VehicleRegistration    *string     `json:"vehicle_registration,omitempty"`
	CustomerNotes          *string     `json:"customer_notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	BookingID uuid.UUID `json:"booking_id"`
	Status    string    `json:"status"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID uuid.UUID) *createBooking.Request {
	return &createBooking.Request{
		UserID:                 userID,
		StationIDs:             r.StationIDs,
		SalesItemIDs:           r.SalesItemIDs,
		DeliveryWindowStartsAt: r.DeliveryWindowStartsAt,
		DeliveryWindowEndsAt:   r.DeliveryWindowEndsAt,
		AddressID:              r.AddressID,
		VehicleMake:            r.VehicleMake,
		VehicleModel:           r.VehicleModel,
		VehicleYear:            r.VehicleYear,
		VehicleRegistration:    r.VehicleRegistration,
		CustomerNotes:          r.CustomerNotes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		BookingID: resp.BookingID,
		Status:    string(resp.Status),
	}
}
