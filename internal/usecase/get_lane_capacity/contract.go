package get_lane_capacity

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-LaneBooking/internal/domain"
)

// LaneRepository интерфейс репозитория линий
type LaneRepository interface {
	GetLane(ctx context.Context, laneID uuid.UUID) (*domain.Lane, error)
}

// IntervalRepository интерфейс поиска интервалов емкости
type IntervalRepository interface {
	GetIntervalsInWindow(ctx context.Context, start, end time.Time) ([]domain.CapacityInterval, error)
}

// LedgerRepository интерфейс чтения журнала загрузки линий
type LedgerRepository interface {
	GetLaneCapacity(ctx context.Context, laneID uuid.UUID, intervalIDs []uuid.UUID) ([]domain.LaneIntervalCapacity, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
