package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a customer booking for one or more stations
type Booking struct {
	ID     uuid.UUID
	UserID uuid.UUID
	// LaneID is the lane of the first requested station
	LaneID    uuid.UUID
	AddressID *uuid.UUID

	DeliveryWindowStartsAt time.Time
	DeliveryWindowEndsAt   time.Time
	ServiceTimeSeconds     int

	VehicleMake         *string
	VehicleModel        *string
	VehicleYear         *int
	VehicleRegistration *string

	Status        BookingStatus
	AdminNotes    *string
	CustomerNotes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BookingStation is one visit of a booking, ordered by SequenceOrder (1-based)
type BookingStation struct {
	BookingID          uuid.UUID
	StationID          uuid.UUID
	SequenceOrder      int
	EstimatedStartTime time.Time
	EstimatedEndTime   time.Time
}

// BookingInterval is the share of a booking's service time allocated to one capacity interval
type BookingInterval struct {
	BookingID     uuid.UUID
	IntervalID    uuid.UUID
	BookedSeconds int
}

// BookingSalesItem records a purchased catalog item
type BookingSalesItem struct {
	BookingID   uuid.UUID
	SalesItemID uuid.UUID
}

// BookingDetails is a booking together with its child rows
type BookingDetails struct {
	Booking      *Booking
	Stations     []BookingStation
	Intervals    []BookingInterval
	SalesItemIDs []uuid.UUID
}

// ParseBookingStatus validates a status string
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch status := BookingStatus(s); status {
	case StatusConfirmed, StatusCompleted, StatusCancelled:
		return status, true
	default:
		return "", false
	}
}
