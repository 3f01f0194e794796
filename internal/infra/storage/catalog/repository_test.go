package catalog

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LaneBooking/pkg/dbmetrics"
)

func TestGetSalesItems(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(dbmetrics.Wrap(db, nil, ""))
	oilChange := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, service_time_seconds FROM sales_items WHERE id IN ($1)")).
		WithArgs(oilChange).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "service_time_seconds"}).
			AddRow(oilChange.String(), "Oil change", 1200))

	items, err := repo.GetSalesItems(context.Background(), []uuid.UUID{oilChange})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1200, items[0].ServiceTimeSeconds)
	require.NoError(t, mock.ExpectationsWereMet())
}
