package capacity

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-LaneBooking/internal/domain"
	"github.com/m04kA/SMC-LaneBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-LaneBooking/pkg/psqlbuilder"
)

// incrementSuffix атомарно прибавляет delta к существующей строке журнала.
// Чтение и запись выполняются одной командой, поэтому параллельные бронирования не теряют обновления
const incrementSuffix = "ON CONFLICT (interval_id, lane_id) DO UPDATE SET " +
	"total_booked_seconds = lane_interval_capacity.total_booked_seconds + EXCLUDED.total_booked_seconds, " +
	"updated_at = NOW()"

// Repository репозиторий интервалов емкости и журнала загрузки линий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория емкости
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetIntervalsInWindow возвращает интервалы, пересекающиеся с окном [start, end], по возрастанию начала
func (r *Repository) GetIntervalsInWindow(ctx context.Context, start, end time.Time) ([]domain.CapacityInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "date", "starts_at", "ends_at").
		From("capacity_intervals").
		Where(squirrel.GtOrEq{"ends_at": start}).
		Where(squirrel.LtOrEq{"starts_at": end}).
		OrderBy("starts_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetIntervalsInWindow - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetIntervalsInWindow - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	intervals := make([]domain.CapacityInterval, 0)
	for rows.Next() {
		var i domain.CapacityInterval
		if err := rows.Scan(&i.ID, &i.Date, &i.StartsAt, &i.EndsAt); err != nil {
			return nil, fmt.Errorf("%w: GetIntervalsInWindow - scan row: %v", ErrScanRow, err)
		}
		intervals = append(intervals, i)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetIntervalsInWindow - rows error: %v", ErrScanRow, err)
	}

	return intervals, nil
}

// IncrementLaneCapacity прибавляет delta секунд к загрузке линии в интервале.
// Строка журнала создается при первом обращении
func (r *Repository) IncrementLaneCapacity(ctx context.Context, intervalID, laneID uuid.UUID, delta int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("lane_interval_capacity").
		Columns("interval_id", "lane_id", "total_booked_seconds").
		Values(intervalID, laneID, delta).
		Suffix(incrementSuffix).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: IncrementLaneCapacity - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: IncrementLaneCapacity - interval_id=%s lane_id=%s: %v", ErrExecQuery, intervalID, laneID, err)
	}

	return nil
}

// GetLaneCapacity возвращает строки журнала линии для переданных интервалов.
// Интервалы без строки в журнале в результат не попадают
func (r *Repository) GetLaneCapacity(ctx context.Context, laneID uuid.UUID, intervalIDs []uuid.UUID) ([]domain.LaneIntervalCapacity, error) {
	if len(intervalIDs) == 0 {
		return []domain.LaneIntervalCapacity{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("interval_id", "lane_id", "total_booked_seconds").
		From("lane_interval_capacity").
		Where(squirrel.Eq{"lane_id": laneID}).
		Where(squirrel.Eq{"interval_id": intervalIDs}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetLaneCapacity - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetLaneCapacity - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.LaneIntervalCapacity, 0, len(intervalIDs))
	for rows.Next() {
		var c domain.LaneIntervalCapacity
		if err := rows.Scan(&c.IntervalID, &c.LaneID, &c.TotalBookedSeconds); err != nil {
			return nil, fmt.Errorf("%w: GetLaneCapacity - scan row: %v", ErrScanRow, err)
		}
		result = append(result, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetLaneCapacity - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}
