package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"staybook/internal/pkg/dates"
	"staybook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "avail"

// AvailabilityCache is a read-through decorator over the availability
// store. TTL bounds staleness; eager invalidation after bookings and
// cancellations is a latency optimization only. Redis failures degrade to
// store reads and never fail the request.
type AvailabilityCache struct {
	client *redis.Client
	store  queries.AvailabilityReader
	ttl    time.Duration
}

func NewAvailabilityCache(client *redis.Client, store queries.AvailabilityReader, ttl time.Duration) *AvailabilityCache {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &AvailabilityCache{client: client, store: store, ttl: ttl}
}

func (c *AvailabilityCache) Window(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time) (*queries.AvailabilityView, error) {
	key := windowKey(propertyID, checkIn, checkOut)

	raw, err := c.client.Get(ctx, key).Result()
	if err == nil {
		var view queries.AvailabilityView
		if unmarshalErr := json.Unmarshal([]byte(raw), &view); unmarshalErr == nil {
			return &view, nil
		}
		// Corrupt entry: fall through to the store and overwrite.
	} else if !errors.Is(err, redis.Nil) {
		slog.Warn("availability cache read failed", "key", key, "error", err.Error())
	}

	view, err := c.store.Window(ctx, propertyID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	if encoded, marshalErr := json.Marshal(view); marshalErr == nil {
		if setErr := c.client.Set(ctx, key, encoded, c.ttl).Err(); setErr != nil {
			slog.Warn("availability cache write failed", "key", key, "error", setErr.Error())
		}
	}

	return view, nil
}

// InvalidateProperty drops every cached window for the property. Best
// effort: errors are logged, the TTL is the correctness backstop.
func (c *AvailabilityCache) InvalidateProperty(ctx context.Context, propertyID uuid.UUID) {
	pattern := fmt.Sprintf("%s:%s:*", keyPrefix, propertyID)

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			slog.Warn("availability cache invalidation failed", "key", iter.Val(), "error", err.Error())
		}
	}
	if err := iter.Err(); err != nil {
		slog.Warn("availability cache scan failed", "pattern", pattern, "error", err.Error())
	}
}

func windowKey(propertyID uuid.UUID, checkIn, checkOut time.Time) string {
	return fmt.Sprintf("%s:%s:%s:%s", keyPrefix, propertyID, dates.Format(checkIn), dates.Format(checkOut))
}
