package bookings

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-LaneBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID uuid.UUID, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetStations(ctx context.Context, bookingID uuid.UUID) ([]domain.BookingStation, error)
	GetIntervals(ctx context.Context, bookingID uuid.UUID) ([]domain.BookingInterval, error)
	GetSalesItemIDs(ctx context.Context, bookingID uuid.UUID) ([]uuid.UUID, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
