package intervals

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-LaneBooking/internal/domain"
)

const keyPrefix = "lane-booking:intervals"

// Source источник интервалов, к которому кеш обращается при промахе
type Source interface {
	GetIntervalsInWindow(ctx context.Context, start, end time.Time) ([]domain.CapacityInterval, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
}

type cachedInterval struct {
	ID       uuid.UUID `json:"id"`
	Date     time.Time `json:"date"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

// Cache read-through кеш поиска интервалов по окну.
// Интервалы неизменяемы, поэтому запись живет до истечения TTL без инвалидации
type Cache struct {
	client *redis.Client
	source Source
	ttl    time.Duration
	logger Logger
}

func NewCache(client *redis.Client, source Source, ttl time.Duration, logger Logger) *Cache {
	return &Cache{
		client: client,
		source: source,
		ttl:    ttl,
		logger: logger,
	}
}

// GetIntervalsInWindow возвращает интервалы из Redis, при промахе или ошибке читает источник
func (c *Cache) GetIntervalsInWindow(ctx context.Context, start, end time.Time) ([]domain.CapacityInterval, error) {
	key := cacheKey(start, end)

	payload, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		intervals, decodeErr := decode(payload)
		if decodeErr == nil {
			return intervals, nil
		}
		c.logger.Warn("IntervalCache: corrupted entry key=%s: %v", key, decodeErr)
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("IntervalCache: get key=%s failed: %v", key, err)
	}

	intervals, err := c.source.GetIntervalsInWindow(ctx, start, end)
	if err != nil {
		return nil, err
	}

	// Пустой результат не кешируем: горизонт могут догенерировать
	if len(intervals) == 0 {
		return intervals, nil
	}

	if encoded, err := encode(intervals); err == nil {
		if err := c.client.Set(ctx, key, encoded, c.ttl).Err(); err != nil {
			c.logger.Warn("IntervalCache: set key=%s failed: %v", key, err)
		}
	}

	return intervals, nil
}

func cacheKey(start, end time.Time) string {
	return fmt.Sprintf("%s:%d:%d", keyPrefix, start.UTC().UnixNano(), end.UTC().UnixNano())
}

func encode(intervals []domain.CapacityInterval) ([]byte, error) {
	items := make([]cachedInterval, 0, len(intervals))
	for _, i := range intervals {
		items = append(items, cachedInterval{ID: i.ID, Date: i.Date, StartsAt: i.StartsAt, EndsAt: i.EndsAt})
	}
	return json.Marshal(items)
}

func decode(payload []byte) ([]domain.CapacityInterval, error) {
	var items []cachedInterval
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, err
	}

	intervals := make([]domain.CapacityInterval, 0, len(items))
	for _, i := range items {
		intervals = append(intervals, domain.CapacityInterval{ID: i.ID, Date: i.Date, StartsAt: i.StartsAt, EndsAt: i.EndsAt})
	}
	return intervals, nil
}
