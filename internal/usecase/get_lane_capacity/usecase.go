package get_lane_capacity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	stationRepo "github.com/m04kA/SMC-LaneBooking/internal/infra/storage/station"
)

// UseCase use case для получения загрузки линии по интервалам емкости
type UseCase struct {
	laneRepo     LaneRepository
	intervalRepo IntervalRepository
	ledgerRepo   LedgerRepository
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	laneRepo LaneRepository,
	intervalRepo IntervalRepository,
	ledgerRepo LedgerRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		laneRepo:     laneRepo,
		intervalRepo: intervalRepo,
		ledgerRepo:   ledgerRepo,
		logger:       logger,
	}
}

// Execute выполняет use case получения загрузки линии
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetLaneCapacity: lane=%s, from=%s, to=%s",
		req.LaneID, req.From.Format(time.RFC3339), req.To.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetLaneCapacity: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем линию
	lane, err := uc.laneRepo.GetLane(ctx, req.LaneID)
	if err != nil {
		if errors.Is(err, stationRepo.ErrLaneNotFound) {
			uc.logger.Warn("GetLaneCapacity: lane id=%s not found", req.LaneID)
			return nil, ErrLaneNotFound
		}
		uc.logger.Error("GetLaneCapacity: failed to get lane id=%s: %v", req.LaneID, err)
		return nil, fmt.Errorf("%w: failed to get lane: %v", ErrInternal, err)
	}

	// 3. Интервалы периода
	intervals, err := uc.intervalRepo.GetIntervalsInWindow(ctx, req.From, req.To)
	if err != nil {
		uc.logger.Error("GetLaneCapacity: failed to get intervals: %v", err)
		return nil, fmt.Errorf("%w: failed to get intervals: %v", ErrInternal, err)
	}

	ids := make([]uuid.UUID, 0, len(intervals))
	for _, i := range intervals {
		ids = append(ids, i.ID)
	}

	// 4. Записи журнала линии
	rows, err := uc.ledgerRepo.GetLaneCapacity(ctx, req.LaneID, ids)
	if err != nil {
		uc.logger.Error("GetLaneCapacity: failed to get ledger for lane id=%s: %v", req.LaneID, err)
		return nil, fmt.Errorf("%w: failed to get ledger: %v", ErrInternal, err)
	}

	booked := make(map[uuid.UUID]int, len(rows))
	for _, row := range rows {
		booked[row.IntervalID] = row.TotalBookedSeconds
	}

	loads := make([]IntervalLoad, 0, len(intervals))
	for _, i := range intervals {
		// Интервал, касающийся периода только границей, не показываем
		if i.Overlap(req.From, req.To) <= 0 {
			continue
		}
		loads = append(loads, IntervalLoad{
			IntervalID:         i.ID,
			Date:               i.Date,
			StartsAt:           i.StartsAt,
			EndsAt:             i.EndsAt,
			CapacitySeconds:    int(i.EndsAt.Sub(i.StartsAt).Seconds()),
			TotalBookedSeconds: booked[i.ID],
		})
	}

	uc.logger.Info("GetLaneCapacity: lane=%s, intervals=%d, with bookings=%d", req.LaneID, len(loads), len(rows))

	return &Response{
		LaneID:                 lane.ID,
		LaneName:               lane.Name,
		ClosedForNewBookingsAt: lane.ClosedForNewBookingsAt,
		Intervals:              loads,
	}, nil
}
