package get_lane_capacity

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-LaneBooking/internal/domain"
)

const maxRange = domain.MaxCapacityQueryDays * 24 * time.Hour

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.LaneID == uuid.Nil {
		return fmt.Errorf("%w: laneID is required", ErrInvalidInput)
	}

	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}

	if !req.To.After(req.From) {
		return fmt.Errorf("%w: to must be after from", ErrInvalidInput)
	}

	if req.To.Sub(req.From) > maxRange {
		return fmt.Errorf("%w: at most %d days", ErrRangeTooLong, domain.MaxCapacityQueryDays)
	}

	return nil
}
