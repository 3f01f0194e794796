package get_lane_capacity

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса загрузки линии
type Request struct {
	LaneID uuid.UUID
	From   time.Time
	To     time.Time
}

// Response модель ответа с загрузкой линии по интервалам
type Response struct {
	LaneID                 uuid.UUID
	LaneName               string
	ClosedForNewBookingsAt *time.Time
	Intervals              []IntervalLoad
}

// IntervalLoad загрузка линии в одном интервале
type IntervalLoad struct {
	IntervalID         uuid.UUID
	Date               time.Time
	StartsAt           time.Time
	EndsAt             time.Time
	CapacitySeconds    int // Длина интервала в секундах
	TotalBookedSeconds int // Забронированное время линии (0, если записей нет)
}
