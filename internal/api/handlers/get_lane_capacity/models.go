package get_lane_capacity

import (
	"time"

	"github.com/google/uuid"

	getLaneCapacity "github.com/m04kA/SMC-LaneBooking/internal/usecase/get_lane_capacity"
)

// LaneCapacityResponse HTTP response model
type LaneCapacityResponse struct {
	LaneID                 uuid.UUID      `json:"lane_id"`
	LaneName               string         `json:"lane_name"`
	ClosedForNewBookingsAt *time.Time     `json:"closed_for_new_bookings_at,omitempty"`
	Intervals              []IntervalLoad `json:"intervals"`
}

// IntervalLoad загрузка линии в одном интервале
type IntervalLoad struct {
	IntervalID         uuid.UUID `json:"interval_id"`
	Date               string    `json:"date"`
	StartsAt           time.Time `json:"starts_at"`
	EndsAt             time.Time `json:"ends_at"`
	CapacitySeconds    int       `json:"capacity_seconds"`
	TotalBookedSeconds int       `json:"total_booked_seconds"`
}

// ToUseCaseRequest разбирает параметры запроса
func ToUseCaseRequest(laneIDStr, fromStr, toStr string) (*getLaneCapacity.Request, error) {
	laneID, err := uuid.Parse(laneIDStr)
	if err != nil {
		return nil, err
	}

	from, err := time.Parse(time.RFC3339, fromStr)
	if err != nil {
		return nil, err
	}

	to, err := time.Parse(time.RFC3339, toStr)
	if err != nil {
		return nil, err
	}

	return &getLaneCapacity.Request{
		LaneID: laneID,
		From:   from,
		To:     to,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getLaneCapacity.Response) *LaneCapacityResponse {
	intervals := make([]IntervalLoad, len(resp.Intervals))
	for i, load := range resp.Intervals {
		intervals[i] = IntervalLoad{
			IntervalID:         load.IntervalID,
			Date:               load.Date.Format(time.DateOnly),
			StartsAt:           load.StartsAt,
			EndsAt:             load.EndsAt,
			CapacitySeconds:    load.CapacitySeconds,
			TotalBookedSeconds: load.TotalBookedSeconds,
		}
	}

	return &LaneCapacityResponse{
		LaneID:                 resp.LaneID,
		LaneName:               resp.LaneName,
		ClosedForNewBookingsAt: resp.ClosedForNewBookingsAt,
		Intervals:              intervals,
	}
}
