package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"yatra/internal/domain"
)

// RideCache caches rider ride histories in Redis.
type RideCache struct {
	client *redis.Client
}

// NewRideCache creates a new RideCache.
func NewRideCache(client *redis.Client) *RideCache {
	return &RideCache{client: client}
}

// RiderRidesTTL is short: the history only changes on settlement or
// repair, both of which invalidate explicitly, but a stale read after a
// missed invalidation should still age out quickly.
const RiderRidesTTL = 60 * time.Second

const riderRidesPrefix = "cache:rider_rides:"

// GetRiderRides retrieves a rider's cached ride history.
// Returns nil on cache miss.
func (c *RideCache) GetRiderRides(ctx context.Context, riderID string) ([]*domain.RideWithDriver, error) {
	key := riderRidesPrefix + riderID
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var rides []*domain.RideWithDriver
	if err := json.Unmarshal(data, &rides); err != nil {
		return nil, err
	}
	return rides, nil
}

// SetRiderRides stores a rider's ride history in cache.
func (c *RideCache) SetRiderRides(ctx context.Context, riderID string, rides []*domain.RideWithDriver) error {
	key := riderRidesPrefix + riderID
	data, err := json.Marshal(rides)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, RiderRidesTTL).Err()
}

// InvalidateRiderRides removes a rider's ride history from cache.
func (c *RideCache) InvalidateRiderRides(ctx context.Context, riderID string) error {
	key := riderRidesPrefix + riderID
	return c.client.Del(ctx, key).Err()
}
