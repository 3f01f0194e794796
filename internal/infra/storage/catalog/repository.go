package catalog

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-LaneBooking/internal/domain"
	"github.com/m04kA/SMC-LaneBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-LaneBooking/pkg/psqlbuilder"
)

// Repository репозиторий каталога услуг
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetSalesItems возвращает позиции каталога по набору ID.
// Каждая позиция возвращается один раз, даже если ID повторяется во входе
func (r *Repository) GetSalesItems(ctx context.Context, ids []uuid.UUID) ([]domain.SalesItem, error) {
	if len(ids) == 0 {
		return []domain.SalesItem{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "service_time_seconds").
		From("sales_items").
		Where(squirrel.Eq{"id": ids}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSalesItems - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSalesItems - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make([]domain.SalesItem, 0, len(ids))
	for rows.Next() {
		var item domain.SalesItem
		if err := rows.Scan(&item.ID, &item.Name, &item.ServiceTimeSeconds); err != nil {
			return nil, fmt.Errorf("%w: GetSalesItems - scan row: %v", ErrScanRow, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetSalesItems - rows error: %v", ErrScanRow, err)
	}

	return items, nil
}
