package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-LaneBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	CreateStations(ctx context.Context, stations []domain.BookingStation) error
	CreateInterval(ctx context.Context, interval domain.BookingInterval) error
	CreateSalesItems(ctx context.Context, items []domain.BookingSalesItem) error
}

// StationRepository интерфейс репозитория станций
type StationRepository interface {
	GetWithLanes(ctx context.Context, stationIDs []uuid.UUID) ([]domain.StationWithLane, error)
}

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	GetSalesItems(ctx context.Context, ids []uuid.UUID) ([]domain.SalesItem, error)
}

// IntervalRepository интерфейс поиска интервалов емкости
type IntervalRepository interface {
	GetIntervalsInWindow(ctx context.Context, start, end time.Time) ([]domain.CapacityInterval, error)
}

// LedgerRepository интерфейс журнала загрузки линий
type LedgerRepository interface {
	IncrementLaneCapacity(ctx context.Context, intervalID, laneID uuid.UUID, delta int) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	Savepoint(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс публикации событий о бронированиях
type EventPublisher interface {
	PublishBookingConfirmed(ctx context.Context, event domain.BookingConfirmedEvent) error
}

// Metrics интерфейс бизнес-метрик бронирования
type Metrics interface {
	IncBookingCommitted()
	IncBookingCommitFailure(kind string)
	IncLedgerUpsertFailure()
	ObserveAllocatedSeconds(seconds int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
