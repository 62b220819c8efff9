package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Cache stores opaque byte values with a TTL. Get returns (nil, nil) on a miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// DashboardKey is the cache key of a user's dashboard summary.
func DashboardKey(userID uuid.UUID) string {
	return "dashboard:" + userID.String()
}

// TrendsKey is the cache key of a user's monthly trends.
func TrendsKey(userID uuid.UUID) string {
	return "trends:" + userID.String()
}

// UserKeys lists every cached read derived from a user's data.
func UserKeys(userID uuid.UUID) []string {
	return []string{DashboardKey(userID), TrendsKey(userID)}
}

// GetJSON decodes a cached JSON value into T. ok is false on a miss.
func GetJSON[T any](ctx context.Context, c Cache, key string) (value T, ok bool, err error) {
	raw, err := c.Get(ctx, key)
	if err != nil || raw == nil {
		return value, false, err
	}
	if err = json.Unmarshal(raw, &value); err != nil {
		return value, false, err
	}
	return value, true, nil
}

// SetJSON stores value as JSON.
func SetJSON(ctx context.Context, c Cache, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, raw, ttl)
}
