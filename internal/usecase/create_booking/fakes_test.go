package create_booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-LaneBooking/internal/domain"
)

type ledgerKey struct {
	intervalID uuid.UUID
	laneID     uuid.UUID
}

// memoryStore хранилище в памяти, реализующее все репозитории use case
type memoryStore struct {
	stations   map[uuid.UUID]domain.StationWithLane
	salesItems map[uuid.UUID]domain.SalesItem
	intervals  []domain.CapacityInterval

	bookings        []*domain.Booking
	bookingStations []domain.BookingStation
	bookingInterval []domain.BookingInterval
	bookingItems    []domain.BookingSalesItem
	ledger          map[ledgerKey]int

	failCreateInterval error
	failIncrement      error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		stations:   make(map[uuid.UUID]domain.StationWithLane),
		salesItems: make(map[uuid.UUID]domain.SalesItem),
		ledger:     make(map[ledgerKey]int),
	}
}

type snapshot struct {
	bookings        []*domain.Booking
	bookingStations []domain.BookingStation
	bookingInterval []domain.BookingInterval
	bookingItems    []domain.BookingSalesItem
	ledger          map[ledgerKey]int
}

func (s *memoryStore) snapshot() snapshot {
	ledger := make(map[ledgerKey]int, len(s.ledger))
	for k, v := range s.ledger {
		ledger[k] = v
	}
	return snapshot{
		bookings:        append([]*domain.Booking(nil), s.bookings...),
		bookingStations: append([]domain.BookingStation(nil), s.bookingStations...),
		bookingInterval: append([]domain.BookingInterval(nil), s.bookingInterval...),
		bookingItems:    append([]domain.BookingSalesItem(nil), s.bookingItems...),
		ledger:          ledger,
	}
}

func (s *memoryStore) restore(snap snapshot) {
	s.bookings = snap.bookings
	s.bookingStations = snap.bookingStations
	s.bookingInterval = snap.bookingInterval
	s.bookingItems = snap.bookingItems
	s.ledger = snap.ledger
}

func (s *memoryStore) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	s.bookings = append(s.bookings, booking)
	return booking, nil
}

func (s *memoryStore) CreateStations(_ context.Context, stations []domain.BookingStation) error {
	s.bookingStations = append(s.bookingStations, stations...)
	return nil
}

func (s *memoryStore) CreateInterval(_ context.Context, interval domain.BookingInterval) error {
	if s.failCreateInterval != nil && len(s.bookingInterval) > 0 {
		return s.failCreateInterval
	}
	s.bookingInterval = append(s.bookingInterval, interval)
	return nil
}

func (s *memoryStore) CreateSalesItems(_ context.Context, items []domain.BookingSalesItem) error {
	s.bookingItems = append(s.bookingItems, items...)
	return nil
}

func (s *memoryStore) GetWithLanes(_ context.Context, ids []uuid.UUID) ([]domain.StationWithLane, error) {
	seen := make(map[uuid.UUID]struct{})
	var result []domain.StationWithLane
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if st, ok := s.stations[id]; ok {
			result = append(result, st)
		}
	}
	return result, nil
}

func (s *memoryStore) GetSalesItems(_ context.Context, ids []uuid.UUID) ([]domain.SalesItem, error) {
	seen := make(map[uuid.UUID]struct{})
	var result []domain.SalesItem
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if item, ok := s.salesItems[id]; ok {
			result = append(result, item)
		}
	}
	return result, nil
}

func (s *memoryStore) GetIntervalsInWindow(_ context.Context, start, end time.Time) ([]domain.CapacityInterval, error) {
	var result []domain.CapacityInterval
	for _, i := range s.intervals {
		if !i.EndsAt.Before(start) && !i.StartsAt.After(end) {
			result = append(result, i)
		}
	}
	return result, nil
}

func (s *memoryStore) IncrementLaneCapacity(_ context.Context, intervalID, laneID uuid.UUID, delta int) error {
	if s.failIncrement != nil {
		return s.failIncrement
	}
	s.ledger[ledgerKey{intervalID, laneID}] += delta
	return nil
}

// memoryTxManager откатывает изменения хранилища при ошибке, как настоящая транзакция
type memoryTxManager struct {
	store        *memoryStore
	savepointErr error
}

func (m *memoryTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	snap := m.store.snapshot()
	if err := fn(ctx); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

func (m *memoryTxManager) Savepoint(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.savepointErr != nil {
		return m.savepointErr
	}
	snap := m.store.snapshot()
	if err := fn(ctx); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

type recordingPublisher struct {
	events []domain.BookingConfirmedEvent
	err    error
}

func (p *recordingPublisher) PublishBookingConfirmed(_ context.Context, event domain.BookingConfirmedEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

type countingMetrics struct {
	committed       int
	failures        map[string]int
	ledgerFailures  int
	allocatedSecond []int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{failures: make(map[string]int)}
}

func (m *countingMetrics) IncBookingCommitted()             { m.committed++ }
func (m *countingMetrics) IncBookingCommitFailure(k string) { m.failures[k]++ }
func (m *countingMetrics) IncLedgerUpsertFailure()          { m.ledgerFailures++ }
func (m *countingMetrics) ObserveAllocatedSeconds(s int)    { m.allocatedSecond = append(m.allocatedSecond, s) }

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

type silentLogger struct{}

func (silentLogger) Info(string, ...interface{})  {}
func (silentLogger) Warn(string, ...interface{})  {}
func (silentLogger) Error(string, ...interface{}) {}

var errDatastore = errors.New("datastore unavailable")
