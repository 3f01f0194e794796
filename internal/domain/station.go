package domain

import (
	"time"

	"github.com/google/uuid"
)

// StationWithLane is a station joined with the lane it belongs to
type StationWithLane struct {
	StationID                  uuid.UUID
	LaneID                     uuid.UUID
	Active                     bool
	LaneName                   string
	LaneClosedForNewBookingsAt *time.Time
}

// IsLaneClosed returns true if the lane stopped accepting bookings at or before now
func (s StationWithLane) IsLaneClosed(now time.Time) bool {
	return s.LaneClosedForNewBookingsAt != nil && !s.LaneClosedForNewBookingsAt.After(now)
}

// SalesItem is a catalog item with a fixed service time
type SalesItem struct {
	ID                 uuid.UUID
	Name               string
	ServiceTimeSeconds int
}

// Lane is a schedulable service channel grouping stations
type Lane struct {
	ID                     uuid.UUID
	Name                   string
	ClosedForNewBookingsAt *time.Time
}
