package redis

import (
	"context"

	"yatra/internal/domain"
)

// RideCacheInterface defines the interface for ride history caching.
type RideCacheInterface interface {
	GetRiderRides(ctx context.Context, riderID string) ([]*domain.RideWithDriver, error)
	SetRiderRides(ctx context.Context, riderID string, rides []*domain.RideWithDriver) error
	InvalidateRiderRides(ctx context.Context, riderID string) error
}

// Ensure concrete types implement interfaces.
var _ RideCacheInterface = (*RideCache)(nil)
