package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-LaneBooking/internal/domain"
	"github.com/m04kA/SMC-LaneBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-LaneBooking/pkg/psqlbuilder"
)

// pgUniqueViolation код ошибки PostgreSQL для нарушения уникальности
const pgUniqueViolation = "23505"

var bookingColumns = []string{
	"id",
	"user_id",
	"lane_id",
	"address_id",
	"delivery_window_starts_at",
	"delivery_window_ends_at",
	"service_time_seconds",
	"vehicle_make",
	"vehicle_model",
	"vehicle_year",
	"vehicle_registration",
	"status",
	"admin_notes",
	"customer_notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями и их дочерними таблицами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование с заранее сгенерированным ID.
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"user_id",
			"lane_id",
			"address_id",
			"delivery_window_starts_at",
			"delivery_window_ends_at",
			"service_time_seconds",
			"vehicle_make",
			"vehicle_model",
			"vehicle_year",
			"vehicle_registration",
			"status",
			"admin_notes",
			"customer_notes",
		).
		Values(
			booking.ID,
			booking.UserID,
			booking.LaneID,
			booking.AddressID,
			booking.DeliveryWindowStartsAt,
			booking.DeliveryWindowEndsAt,
			booking.ServiceTimeSeconds,
			booking.VehicleMake,
			booking.VehicleModel,
			booking.VehicleYear,
			booking.VehicleRegistration,
			booking.Status,
			booking.AdminNotes,
			booking.CustomerNotes,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return nil, fmt.Errorf("%w: Create - id=%s", ErrDuplicateBooking, booking.ID)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// CreateStations вставляет все станции бронирования одним запросом
func (r *Repository) CreateStations(ctx context.Context, stations []domain.BookingStation) error {
	if len(stations) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert("booking_stations").
		Columns("booking_id", "station_id", "sequence_order", "estimated_start_time", "estimated_end_time")
	for _, s := range stations {
		builder = builder.Values(s.BookingID, s.StationID, s.SequenceOrder, s.EstimatedStartTime, s.EstimatedEndTime)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateStations - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateStations - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// CreateInterval вставляет одну запись распределения времени по интервалу
func (r *Repository) CreateInterval(ctx context.Context, interval domain.BookingInterval) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_intervals").
		Columns("booking_id", "interval_id", "booked_seconds").
		Values(interval.BookingID, interval.IntervalID, interval.BookedSeconds).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CreateInterval - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateInterval - execute insert interval_id=%s: %v", ErrExecQuery, interval.IntervalID, err)
	}

	return nil
}

// CreateSalesItems вставляет позиции каталога бронирования (без дедупликации)
func (r *Repository) CreateSalesItems(ctx context.Context, items []domain.BookingSalesItem) error {
	if len(items) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert("booking_sales_items").Columns("booking_id", "sales_item_id")
	for _, item := range items {
		builder = builder.Values(item.BookingID, item.SalesItemID)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateSalesItems - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateSalesItems - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByUserID получает бронирования пользователя, новые окна первыми
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID uuid.UUID, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("delivery_window_starts_at DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByUserID - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// GetStations получает станции бронирования в порядке посещения
func (r *Repository) GetStations(ctx context.Context, bookingID uuid.UUID) ([]domain.BookingStation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"booking_id",
		"station_id",
		"sequence_order",
		"estimated_start_time",
		"estimated_end_time",
	).
		From("booking_stations").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("sequence_order ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetStations - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetStations - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	stations := make([]domain.BookingStation, 0)
	for rows.Next() {
		var s domain.BookingStation
		if err := rows.Scan(&s.BookingID, &s.StationID, &s.SequenceOrder, &s.EstimatedStartTime, &s.EstimatedEndTime); err != nil {
			return nil, fmt.Errorf("%w: GetStations - scan row: %v", ErrScanRow, err)
		}
		stations = append(stations, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetStations - rows error: %v", ErrScanRow, err)
	}

	return stations, nil
}

// GetIntervals получает распределение времени бронирования в порядке начала интервалов
func (r *Repository) GetIntervals(ctx context.Context, bookingID uuid.UUID) ([]domain.BookingInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("bi.booking_id", "bi.interval_id", "bi.booked_seconds").
		From("booking_intervals bi").
		Join("capacity_intervals ci ON ci.id = bi.interval_id").
		Where(squirrel.Eq{"bi.booking_id": bookingID}).
		OrderBy("ci.starts_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetIntervals - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetIntervals - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	intervals := make([]domain.BookingInterval, 0)
	for rows.Next() {
		var i domain.BookingInterval
		if err := rows.Scan(&i.BookingID, &i.IntervalID, &i.BookedSeconds); err != nil {
			return nil, fmt.Errorf("%w: GetIntervals - scan row: %v", ErrScanRow, err)
		}
		intervals = append(intervals, i)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetIntervals - rows error: %v", ErrScanRow, err)
	}

	return intervals, nil
}

// GetSalesItemIDs получает ID купленных позиций каталога (с повторами, как были записаны)
func (r *Repository) GetSalesItemIDs(ctx context.Context, bookingID uuid.UUID) ([]uuid.UUID, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("sales_item_id").
		From("booking_sales_items").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSalesItemIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSalesItemIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: GetSalesItemIDs - scan row: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetSalesItemIDs - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var vehicleYear sql.NullInt64

	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.LaneID,
		&b.AddressID,
		&b.DeliveryWindowStartsAt,
		&b.DeliveryWindowEndsAt,
		&b.ServiceTimeSeconds,
		&b.VehicleMake,
		&b.VehicleModel,
		&vehicleYear,
		&b.VehicleRegistration,
		&b.Status,
		&b.AdminNotes,
		&b.CustomerNotes,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if vehicleYear.Valid {
		year := int(vehicleYear.Int64)
		b.VehicleYear = &year
	}

	return &b, nil
}
