package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-LaneBooking/internal/domain"
	"github.com/m04kA/SMC-LaneBooking/pkg/txmanager"
)

// UseCase use case для создания бронирования: проверки, распределение времени и запись в одной транзакции
type UseCase struct {
	bookingRepo   BookingRepository
	stationRepo   StationRepository
	catalogRepo   CatalogRepository
	intervalRepo  IntervalRepository
	ledgerRepo    LedgerRepository
	txManager     TransactionManager
	publisher     EventPublisher
	metrics       Metrics
	timeProvider  TimeProvider
	commitTimeout time.Duration
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	stationRepo StationRepository,
	catalogRepo CatalogRepository,
	intervalRepo IntervalRepository,
	ledgerRepo LedgerRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	commitTimeout time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		stationRepo:   stationRepo,
		catalogRepo:   catalogRepo,
		intervalRepo:  intervalRepo,
		ledgerRepo:    ledgerRepo,
		txManager:     txManager,
		publisher:     publisher,
		metrics:       metrics,
		timeProvider:  &RealTimeProvider{},
		commitTimeout: commitTimeout,
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования.
// Все записи выполняются в одной транзакции, при ошибке не остается частично созданного бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	uc.logger.Info("CreateBooking: user=%s, stations=%d, sales_items=%d", req.UserID, len(req.StationIDs), len(req.SalesItemIDs))

	defer func() {
		if err != nil {
			uc.metrics.IncBookingCommitFailure(KindLabel(err))
		}
	}()

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	windowStart := *req.DeliveryWindowStartsAt
	windowEnd := *req.DeliveryWindowEndsAt

	if uc.commitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.commitTimeout)
		defer cancel()
	}

	// 2. Станции и их линии
	resolved, err := uc.resolveStations(ctx, req.StationIDs)
	if err != nil {
		return nil, err
	}
	firstStation := resolved[req.StationIDs[0]]

	// 3. Суммарное время обслуживания
	totalSeconds, err := uc.totalServiceTime(ctx, req.SalesItemIDs)
	if err != nil {
		return nil, err
	}

	// 4. Интервалы, пересекающиеся с окном
	intervals, err := uc.intervalRepo.GetIntervalsInWindow(ctx, windowStart, windowEnd)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get intervals: %v", err)
		return nil, newError(ErrInternal, MsgLookupFailed, err)
	}
	if len(intervals) == 0 {
		uc.logger.Warn("CreateBooking: no intervals for window %s - %s",
			windowStart.Format(time.RFC3339), windowEnd.Format(time.RFC3339))
		return nil, newError(ErrConflict, MsgNoIntervals, nil)
	}

	booking := &domain.Booking{
		ID:                     uuid.New(),
		UserID:                 req.UserID,
		LaneID:                 firstStation.LaneID,
		AddressID:              req.AddressID,
		DeliveryWindowStartsAt: windowStart,
		DeliveryWindowEndsAt:   windowEnd,
		ServiceTimeSeconds:     totalSeconds,
		VehicleMake:            req.VehicleMake,
		VehicleModel:           req.VehicleModel,
		VehicleYear:            req.VehicleYear,
		VehicleRegistration:    req.VehicleRegistration,
		Status:                 domain.StatusConfirmed,
		CustomerNotes:          req.CustomerNotes,
	}

	stations := scheduleStations(booking.ID, req.StationIDs, windowStart, totalSeconds)
	allocations := distributeServiceTime(intervals, windowStart, windowEnd, totalSeconds)
	lanes := groupByLane(req.StationIDs, resolved)

	salesItems := make([]domain.BookingSalesItem, 0, len(req.SalesItemIDs))
	for _, id := range req.SalesItemIDs {
		salesItems = append(salesItems, domain.BookingSalesItem{BookingID: booking.ID, SalesItemID: id})
	}

	// 5. Запись бронирования в транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := uc.bookingRepo.Create(txCtx, booking); err != nil {
			uc.logger.Error("CreateBooking: failed to create booking id=%s: %v", booking.ID, err)
			return newError(ErrInternal, MsgCreateBookingFailed, err)
		}

		if err := uc.bookingRepo.CreateStations(txCtx, stations); err != nil {
			uc.logger.Error("CreateBooking: failed to create stations for booking id=%s: %v", booking.ID, err)
			return newError(ErrInternal, MsgCreateStationsFailed, err)
		}

		for _, a := range allocations {
			interval := domain.BookingInterval{
				BookingID:     booking.ID,
				IntervalID:    a.IntervalID,
				BookedSeconds: a.Seconds,
			}
			if err := uc.bookingRepo.CreateInterval(txCtx, interval); err != nil {
				uc.logger.Error("CreateBooking: failed to create interval=%s for booking id=%s: %v", a.IntervalID, booking.ID, err)
				return newError(ErrInternal, MsgCreateIntervalsFailed, err)
			}

			if err := uc.updateLedger(txCtx, booking.ID, a, lanes, len(req.StationIDs)); err != nil {
				return err
			}
		}

		if err := uc.bookingRepo.CreateSalesItems(txCtx, salesItems); err != nil {
			uc.logger.Error("CreateBooking: failed to create sales items for booking id=%s: %v", booking.ID, err)
			return newError(ErrInternal, MsgCreateServicesFailed, err)
		}

		return nil
	})

	if err != nil {
		var bookingErr *Error
		if errors.As(err, &bookingErr) {
			return nil, err
		}
		// Ошибки начала и фиксации транзакции, истекший таймаут
		uc.logger.Error("CreateBooking: transaction failed for booking id=%s: %v", booking.ID, err)
		return nil, newError(ErrInternal, MsgCreateBookingFailed, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s, lane=%s, service_time=%ds, intervals=%d",
		booking.ID, booking.LaneID, totalSeconds, len(allocations))

	uc.metrics.IncBookingCommitted()
	uc.metrics.ObserveAllocatedSeconds(sumAllocated(allocations))

	uc.publishConfirmed(ctx, booking, req.StationIDs)

	return &Response{
		BookingID:          booking.ID,
		Status:             booking.Status,
		LaneID:             booking.LaneID,
		ServiceTimeSeconds: totalSeconds,
	}, nil
}

// resolveStations загружает станции и проверяет, что все они существуют, активны и их линии открыты
func (uc *UseCase) resolveStations(ctx context.Context, stationIDs []uuid.UUID) (map[uuid.UUID]domain.StationWithLane, error) {
	found, err := uc.stationRepo.GetWithLanes(ctx, stationIDs)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get stations: %v", err)
		return nil, newError(ErrInternal, MsgLookupFailed, err)
	}

	requested := make(map[uuid.UUID]struct{}, len(stationIDs))
	for _, id := range stationIDs {
		requested[id] = struct{}{}
	}

	resolved := make(map[uuid.UUID]domain.StationWithLane, len(found))
	for _, s := range found {
		resolved[s.StationID] = s
	}

	if len(resolved) != len(requested) {
		uc.logger.Warn("CreateBooking: requested %d stations, found %d", len(requested), len(resolved))
		return nil, newError(ErrNotFound, MsgStationsNotFound, nil)
	}

	for _, s := range found {
		if !s.Active {
			uc.logger.Warn("CreateBooking: station id=%s is inactive", s.StationID)
			return nil, newError(ErrValidation, MsgStationsInactive, nil)
		}
	}

	now := uc.timeProvider.Now()
	for _, id := range stationIDs {
		s := resolved[id]
		if s.IsLaneClosed(now) {
			uc.logger.Warn("CreateBooking: lane id=%s (%s) is closed for new bookings", s.LaneID, s.LaneName)
			return nil, newError(ErrConflict, fmt.Sprintf(MsgLaneClosedFormat, s.LaneName), nil)
		}
	}

	return resolved, nil
}

// totalServiceTime суммирует время найденных позиций каталога.
// Неизвестные ID дают 0, повторяющиеся учитываются один раз
func (uc *UseCase) totalServiceTime(ctx context.Context, salesItemIDs []uuid.UUID) (int, error) {
	if len(salesItemIDs) == 0 {
		return 0, nil
	}

	items, err := uc.catalogRepo.GetSalesItems(ctx, salesItemIDs)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get sales items: %v", err)
		return 0, newError(ErrInternal, MsgLookupFailed, err)
	}

	seen := make(map[uuid.UUID]struct{}, len(items))
	total := 0
	for _, item := range items {
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		total += item.ServiceTimeSeconds
	}

	if len(seen) < len(salesItemIDs) {
		uc.logger.Info("CreateBooking: %d of %d sales items resolved", len(seen), len(salesItemIDs))
	}

	return total, nil
}

// updateLedger прибавляет долю интервала к журналу каждой линии бронирования.
// Неудачное обновление журнала не прерывает бронирование
func (uc *UseCase) updateLedger(ctx context.Context, bookingID uuid.UUID, a allocation, lanes []laneShare, totalStations int) error {
	for _, lane := range lanes {
		seconds := lane.secondsOf(a.Seconds, totalStations)

		err := uc.txManager.Savepoint(ctx, func(spCtx context.Context) error {
			return uc.ledgerRepo.IncrementLaneCapacity(spCtx, a.IntervalID, lane.LaneID, seconds)
		})
		if err == nil {
			continue
		}

		// Транзакция в неизвестном состоянии, продолжать нельзя
		if errors.Is(err, txmanager.ErrSavepoint) {
			uc.logger.Error("CreateBooking: savepoint failed for booking id=%s: %v", bookingID, err)
			return newError(ErrInternal, MsgCreateIntervalsFailed, err)
		}

		uc.logger.Warn("CreateBooking: ledger not updated for interval=%s lane=%s booking id=%s: %v",
			a.IntervalID, lane.LaneID, bookingID, err)
		uc.metrics.IncLedgerUpsertFailure()
	}

	return nil
}

// publishConfirmed отправляет событие о подтверждении, ошибка только логируется
func (uc *UseCase) publishConfirmed(ctx context.Context, booking *domain.Booking, stationIDs []uuid.UUID) {
	event := domain.BookingConfirmedEvent{
		BookingID:              booking.ID,
		UserID:                 booking.UserID,
		LaneID:                 booking.LaneID,
		StationIDs:             stationIDs,
		DeliveryWindowStartsAt: booking.DeliveryWindowStartsAt,
		DeliveryWindowEndsAt:   booking.DeliveryWindowEndsAt,
		ServiceTimeSeconds:     booking.ServiceTimeSeconds,
		ConfirmedAt:            uc.timeProvider.Now(),
	}

	if err := uc.publisher.PublishBookingConfirmed(ctx, event); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish event for booking id=%s: %v", booking.ID, err)
	}
}
