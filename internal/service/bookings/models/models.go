package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-LaneBooking/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID uuid.UUID `json:"user_id"`
	Status *string   `json:"status,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                     uuid.UUID  `json:"id"`
	UserID                 uuid.UUID  `json:"user_id"`
	LaneID                 uuid.UUID  `json:"lane_id"`
	AddressID              *uuid.UUID `json:"address_id,omitempty"`
	DeliveryWindowStartsAt time.Time  `json:"delivery_window_starts_at"`
	DeliveryWindowEndsAt   time.Time  `json:"delivery_window_ends_at"`
	ServiceTimeSeconds     int        `json:"service_time_seconds"`
	Status                 string     `json:"status"`

	VehicleMake         *string `json:"vehicle_make,omitempty"`
	VehicleModel        *string `json:"vehicle_model,omitempty"`
	VehicleYear         *int    `json:"vehicle_year,omitempty"`
	VehicleRegistration *string `json:"vehicle_registration,omitempty"`
	CustomerNotes       *string `json:"customer_notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StationResponse станция бронирования с расчетным временем
type StationResponse struct {
	StationID          uuid.UUID `json:"station_id"`
	SequenceOrder      int       `json:"sequence_order"`
	EstimatedStartTime time.Time `json:"estimated_start_time"`
	EstimatedEndTime   time.Time `json:"estimated_end_time"`
}

// IntervalResponse доля времени бронирования в интервале
type IntervalResponse struct {
	IntervalID    uuid.UUID `json:"interval_id"`
	BookedSeconds int       `json:"booked_seconds"`
}

// BookingDetailsResponse бронирование со всеми дочерними записями
type BookingDetailsResponse struct {
	BookingResponse
	Stations     []StationResponse  `json:"stations"`
	Intervals    []IntervalResponse `json:"intervals"`
	SalesItemIDs []uuid.UUID        `json:"sales_item_ids"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:                     b.ID,
		UserID:                 b.UserID,
		LaneID:                 b.LaneID,
		AddressID:              b.AddressID,
		DeliveryWindowStartsAt: b.DeliveryWindowStartsAt,
		DeliveryWindowEndsAt:   b.DeliveryWindowEndsAt,
		ServiceTimeSeconds:     b.ServiceTimeSeconds,
		Status:                 string(b.Status),
		VehicleMake:            b.VehicleMake,
		VehicleModel:           b.VehicleModel,
		VehicleYear:            b.VehicleYear,
		VehicleRegistration:    b.VehicleRegistration,
		CustomerNotes:          b.CustomerNotes,
		CreatedAt:              b.CreatedAt,
		UpdatedAt:              b.UpdatedAt,
	}
}

// FromDomainDetails конвертирует бронирование с дочерними записями в DTO
func FromDomainDetails(d *domain.BookingDetails) *BookingDetailsResponse {
	if d == nil || d.Booking == nil {
		return nil
	}

	resp := &BookingDetailsResponse{
		BookingResponse: *FromDomainBooking(d.Booking),
		Stations:        make([]StationResponse, 0, len(d.Stations)),
		Intervals:       make([]IntervalResponse, 0, len(d.Intervals)),
		SalesItemIDs:    d.SalesItemIDs,
	}

	if resp.SalesItemIDs == nil {
		resp.SalesItemIDs = []uuid.UUID{}
	}

	for _, s := range d.Stations {
		resp.Stations = append(resp.Stations, StationResponse{
			StationID:          s.StationID,
			SequenceOrder:      s.SequenceOrder,
			EstimatedStartTime: s.EstimatedStartTime,
			EstimatedEndTime:   s.EstimatedEndTime,
		})
	}

	for _, i := range d.Intervals {
		resp.Intervals = append(resp.Intervals, IntervalResponse{
			IntervalID:    i.IntervalID,
			BookedSeconds: i.BookedSeconds,
		})
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s, ok := domain.ParseBookingStatus(status)
	if !ok {
		return "", ErrInvalidStatus
	}
	return s, nil
}
