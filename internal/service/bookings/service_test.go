package bookings

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LaneBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-LaneBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-LaneBooking/internal/service/bookings/models"
)

type stubRepo struct {
	booking    *domain.Booking
	getErr     error
	list       []*domain.Booking
	listStatus *domain.BookingStatus
	stations   []domain.BookingStation
	intervals  []domain.BookingInterval
	items      []uuid.UUID
}

func (r *stubRepo) GetByID(context.Context, uuid.UUID) (*domain.Booking, error) {
	return r.booking, r.getErr
}

func (r *stubRepo) GetByUserID(_ context.Context, _ uuid.UUID, status *domain.BookingStatus) ([]*domain.Booking, error) {
	r.listStatus = status
	return r.list, nil
}

func (r *stubRepo) GetStations(context.Context, uuid.UUID) ([]domain.BookingStation, error) {
	return r.stations, nil
}

func (r *stubRepo) GetIntervals(context.Context, uuid.UUID) ([]domain.BookingInterval, error) {
	return r.intervals, nil
}

func (r *stubRepo) GetSalesItemIDs(context.Context, uuid.UUID) ([]uuid.UUID, error) {
	return r.items, nil
}

type passThroughTx struct{}

func (passThroughTx) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type silentLogger struct{}

func (silentLogger) Info(string, ...interface{})  {}
func (silentLogger) Warn(string, ...interface{})  {}
func (silentLogger) Error(string, ...interface{}) {}

func TestService_GetByID(t *testing.T) {
	owner := uuid.New()
	booking := &domain.Booking{ID: uuid.New(), UserID: owner, Status: domain.StatusConfirmed, ServiceTimeSeconds: 1200}
	intervalID := uuid.New()

	repo := &stubRepo{
		booking:   booking,
		stations:  []domain.BookingStation{{BookingID: booking.ID, StationID: uuid.New(), SequenceOrder: 1}},
		intervals: []domain.BookingInterval{{BookingID: booking.ID, IntervalID: intervalID, BookedSeconds: 1200}},
	}
	svc := NewService(repo, passThroughTx{}, silentLogger{})

	t.Run("owner sees details", func(t *testing.T) {
		got, err := svc.GetByID(context.Background(), booking.ID, owner)
		require.NoError(t, err)

		assert.Equal(t, booking.ID, got.ID)
		assert.Equal(t, "confirmed", got.Status)
		require.Len(t, got.Stations, 1)
		assert.Equal(t, 1, got.Stations[0].SequenceOrder)
		assert.Equal(t, []models.IntervalResponse{{IntervalID: intervalID, BookedSeconds: 1200}}, got.Intervals)
		assert.NotNil(t, got.SalesItemIDs)
	})

	t.Run("other user is denied", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), booking.ID, uuid.New())
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("missing booking", func(t *testing.T) {
		missing := NewService(&stubRepo{getErr: bookingRepo.ErrBookingNotFound}, passThroughTx{}, silentLogger{})
		_, err := missing.GetByID(context.Background(), uuid.New(), owner)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("repository failure", func(t *testing.T) {
		broken := NewService(&stubRepo{getErr: errors.New("db down")}, passThroughTx{}, silentLogger{})
		_, err := broken.GetByID(context.Background(), uuid.New(), owner)
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestService_GetUserBookings(t *testing.T) {
	userID := uuid.New()
	repo := &stubRepo{list: []*domain.Booking{{ID: uuid.New(), UserID: userID, Status: domain.StatusCompleted}}}
	svc := NewService(repo, passThroughTx{}, silentLogger{})

	status := "completed"
	got, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: userID, Status: &status})
	require.NoError(t, err)
	require.Len(t, got.Bookings, 1)
	require.NotNil(t, repo.listStatus)
	assert.Equal(t, domain.StatusCompleted, *repo.listStatus)

	invalid := "pending"
	_, err = svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: userID, Status: &invalid})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
