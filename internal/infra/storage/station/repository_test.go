package station

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LaneBooking/pkg/dbmetrics"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(dbmetrics.Wrap(db, nil, "")), mock
}

func TestGetWithLanes_JoinsLane(t *testing.T) {
	repo, mock := newRepo(t)
	s1, s2, lane := uuid.New(), uuid.New(), uuid.New()
	closedAt := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT s.id, s.lane_id, s.active, l.name, l.closed_for_new_bookings_at FROM stations s JOIN lanes l ON l.id = s.lane_id WHERE s.id IN ($1,$2)")).
		WithArgs(s1, s2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "lane_id", "active", "name", "closed_for_new_bookings_at"}).
			AddRow(s1.String(), lane.String(), true, "Express", nil).
			AddRow(s2.String(), lane.String(), false, "Express", closedAt))

	got, err := repo.GetWithLanes(context.Background(), []uuid.UUID{s1, s2})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, s1, got[0].StationID)
	assert.True(t, got[0].Active)
	assert.Nil(t, got[0].LaneClosedForNewBookingsAt)

	assert.False(t, got[1].Active)
	require.NotNil(t, got[1].LaneClosedForNewBookingsAt)
	assert.Equal(t, closedAt, *got[1].LaneClosedForNewBookingsAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLane_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("SELECT id, name, closed_for_new_bookings_at FROM lanes").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "closed_for_new_bookings_at"}))

	_, err := repo.GetLane(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrLaneNotFound)
}
