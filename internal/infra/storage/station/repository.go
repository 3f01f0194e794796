package station

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-LaneBooking/internal/domain"
	"github.com/m04kA/SMC-LaneBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-LaneBooking/pkg/psqlbuilder"
)

// Repository репозиторий станций и линий (только чтение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория станций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWithLanes возвращает найденные станции вместе с их линиями.
// Неизвестные ID просто отсутствуют в результате, порядок не гарантируется
func (r *Repository) GetWithLanes(ctx context.Context, stationIDs []uuid.UUID) ([]domain.StationWithLane, error) {
	if len(stationIDs) == 0 {
		return []domain.StationWithLane{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"s.id",
		"s.lane_id",
		"s.active",
		"l.name",
		"l.closed_for_new_bookings_at",
	).
		From("stations s").
		Join("lanes l ON l.id = s.lane_id").
		Where(squirrel.Eq{"s.id": stationIDs}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWithLanes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithLanes - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	stations := make([]domain.StationWithLane, 0, len(stationIDs))
	for rows.Next() {
		var s domain.StationWithLane
		if err := rows.Scan(&s.StationID, &s.LaneID, &s.Active, &s.LaneName, &s.LaneClosedForNewBookingsAt); err != nil {
			return nil, fmt.Errorf("%w: GetWithLanes - scan row: %v", ErrScanRow, err)
		}
		stations = append(stations, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWithLanes - rows error: %v", ErrScanRow, err)
	}

	return stations, nil
}

// GetLane получает линию по ID
func (r *Repository) GetLane(ctx context.Context, laneID uuid.UUID) (*domain.Lane, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "closed_for_new_bookings_at").
		From("lanes").
		Where(squirrel.Eq{"id": laneID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetLane - build select query: %v", ErrBuildQuery, err)
	}

	var lane domain.Lane
	err = executor.QueryRowContext(ctx, query, args...).Scan(&lane.ID, &lane.Name, &lane.ClosedForNewBookingsAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLaneNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetLane - scan lane: %v", ErrScanRow, err)
	}

	return &lane, nil
}
