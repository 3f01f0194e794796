package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingConfirmedEvent is published once a booking has been committed
type BookingConfirmedEvent struct {
	BookingID              uuid.UUID   `json:"booking_id"`
	UserID                 uuid.UUID   `json:"user_id"`
	LaneID                 uuid.UUID   `json:"lane_id"`
	StationIDs             []uuid.UUID `json:"station_ids"`
	DeliveryWindowStartsAt time.Time   `json:"delivery_window_starts_at"`
	DeliveryWindowEndsAt   time.Time   `json:"delivery_window_ends_at"`
	ServiceTimeSeconds     int         `json:"service_time_seconds"`
	ConfirmedAt            time.Time   `json:"confirmed_at"`
}
