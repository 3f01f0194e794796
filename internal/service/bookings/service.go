package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-LaneBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-LaneBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-LaneBooking/internal/service/bookings/models"
)

// Service сервис чтения бронирований
type Service struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование со станциями, интервалами и услугами.
// Пользователь может видеть только своё бронирование
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*models.BookingDetailsResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, userID)

	details := domain.BookingDetails{}

	// Все части бронирования читаются из одного снимка
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
		}

		// Проверяем права доступа
		if booking.UserID != userID {
			return ErrAccessDenied
		}
		details.Booking = booking

		if details.Stations, err = s.bookingRepo.GetStations(txCtx, id); err != nil {
			return fmt.Errorf("%w: GetByID - stations: %v", ErrInternal, err)
		}

		if details.Intervals, err = s.bookingRepo.GetIntervals(txCtx, id); err != nil {
			return fmt.Errorf("%w: GetByID - intervals: %v", ErrInternal, err)
		}

		if details.SalesItemIDs, err = s.bookingRepo.GetSalesItemIDs(txCtx, id); err != nil {
			return fmt.Errorf("%w: GetByID - sales items: %v", ErrInternal, err)
		}

		return nil
	})

	switch {
	case err == nil:
	case errors.Is(err, ErrBookingNotFound):
		s.logger.Warn("GetByID: booking id=%s not found", id)
		return nil, err
	case errors.Is(err, ErrAccessDenied):
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%s", userID, id)
		return nil, err
	case errors.Is(err, ErrInternal):
		s.logger.Error("GetByID: %v", err)
		return nil, err
	default:
		s.logger.Error("GetByID: transaction error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - transaction error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return models.FromDomainDetails(&details), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%s, status=%v", req.UserID, req.Status)

	// Конвертируем статус из строки в domain.BookingStatus
	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%s", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%s", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}
