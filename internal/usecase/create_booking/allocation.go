package create_booking

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-LaneBooking/internal/domain"
)

// allocation доля времени бронирования, попавшая в один интервал
type allocation struct {
	IntervalID uuid.UUID
	Seconds    int
}

// laneShare линия бронирования и число запрошенных станций на ней
type laneShare struct {
	LaneID   uuid.UUID
	Stations int
}

// scheduleStations раскладывает станции подряд от начала окна.
// Время делится поровну с округлением вниз, остаток в расписание не попадает
func scheduleStations(bookingID uuid.UUID, stationIDs []uuid.UUID, windowStart time.Time, totalSeconds int) []domain.BookingStation {
	if len(stationIDs) == 0 {
		return nil
	}

	step := time.Duration(totalSeconds/len(stationIDs)) * time.Second

	result := make([]domain.BookingStation, 0, len(stationIDs))
	start := windowStart
	for i, stationID := range stationIDs {
		end := start.Add(step)
		result = append(result, domain.BookingStation{
			BookingID:          bookingID,
			StationID:          stationID,
			SequenceOrder:      i + 1,
			EstimatedStartTime: start,
			EstimatedEndTime:   end,
		})
		start = end
	}

	return result
}

// distributeServiceTime распределяет время обслуживания по интервалам пропорционально пересечению с окном.
// Каждая доля округляется независимо, интервалы без пересечения пропускаются
func distributeServiceTime(intervals []domain.CapacityInterval, windowStart, windowEnd time.Time, totalSeconds int) []allocation {
	window := windowEnd.Sub(windowStart).Seconds()
	if window <= 0 {
		return nil
	}

	result := make([]allocation, 0, len(intervals))
	for _, interval := range intervals {
		overlap := interval.Overlap(windowStart, windowEnd)
		if overlap <= 0 {
			continue
		}

		share := math.Round(overlap.Seconds() / window * float64(totalSeconds))
		result = append(result, allocation{
			IntervalID: interval.ID,
			Seconds:    int(share),
		})
	}

	return result
}

// groupByLane считает станции запроса по линиям в порядке первого появления.
// Первая линия списка всегда линия первой станции
func groupByLane(stationIDs []uuid.UUID, resolved map[uuid.UUID]domain.StationWithLane) []laneShare {
	index := make(map[uuid.UUID]int)
	lanes := make([]laneShare, 0, 1)

	for _, stationID := range stationIDs {
		station, ok := resolved[stationID]
		if !ok {
			continue
		}

		if i, seen := index[station.LaneID]; seen {
			lanes[i].Stations++
			continue
		}

		index[station.LaneID] = len(lanes)
		lanes = append(lanes, laneShare{LaneID: station.LaneID, Stations: 1})
	}

	return lanes
}

// secondsOf доля линии в распределении интервала по числу её станций
func (l laneShare) secondsOf(allocated, totalStations int) int {
	if totalStations <= 0 || l.Stations == totalStations {
		return allocated
	}
	return int(math.Round(float64(allocated) * float64(l.Stations) / float64(totalStations)))
}

func sumAllocated(allocations []allocation) int {
	total := 0
	for _, a := range allocations {
		total += a.Seconds
	}
	return total
}
