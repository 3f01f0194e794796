package domain

import (
	"time"

	"github.com/google/uuid"
)

// CapacityInterval is an immutable, pre-generated time slice [StartsAt, EndsAt)
type CapacityInterval struct {
	ID       uuid.UUID
	Date     time.Time
	StartsAt time.Time
	EndsAt   time.Time
}

// Overlap returns how much of [start, end) falls inside the interval.
// Zero or negative means no overlap.
func (i CapacityInterval) Overlap(start, end time.Time) time.Duration {
	overlapStart := start
	if i.StartsAt.After(overlapStart) {
		overlapStart = i.StartsAt
	}

	overlapEnd := end
	if i.EndsAt.Before(overlapEnd) {
		overlapEnd = i.EndsAt
	}

	return overlapEnd.Sub(overlapStart)
}

// LaneIntervalCapacity is the running total of booked seconds for a lane within an interval
type LaneIntervalCapacity struct {
	IntervalID         uuid.UUID
	LaneID             uuid.UUID
	TotalBookedSeconds int
}
