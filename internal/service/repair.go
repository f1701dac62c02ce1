package service

import (
	"context"
	"log"

	"yatra/internal/domain"
	"yatra/internal/redis"
	"yatra/internal/repository"
)

// RepairService backfills rides missing a rider association. Invoked
// out-of-band when a rider's ride list appears incomplete.
type RepairService struct {
	rideRepo repository.RideRepository
	cache    redis.RideCacheInterface
}

// NewRepairService creates a new RepairService. cache may be nil.
func NewRepairService(rideRepo repository.RideRepository, cache redis.RideCacheInterface) *RepairService {
	return &RepairService{rideRepo: rideRepo, cache: cache}
}

// RepairResult reports what a backfill sweep changed.
type RepairResult struct {
	Updated int
	Rides   []*domain.Ride
}

// BackfillRider assigns riderID to every ride with no rider association.
// The sweep is global, not scoped to the rider's own history; it is only
// correct while there is at most one unresolved-rider bucket system-wide.
func (s *RepairService) BackfillRider(ctx context.Context, riderID string) (*RepairResult, error) {
	if riderID == "" {
		return nil, newValidationError("rider_id", "required")
	}

	// Rows written before rider association shipped may predate the column.
	if err := s.rideRepo.EnsureRiderColumn(ctx); err != nil {
		return nil, &StoreError{Op: "ensure rider column", Err: err}
	}

	rides, err := s.rideRepo.BackfillRider(ctx, riderID)
	if err != nil {
		return nil, &StoreError{Op: "backfill rider", Err: err}
	}

	if s.cache != nil && len(rides) > 0 {
		if err := s.cache.InvalidateRiderRides(ctx, riderID); err != nil {
			log.Printf("ride cache invalidation failed for rider %s: %v", riderID, err)
		}
	}

	log.Printf("repair: backfilled %d rides to rider %s", len(rides), riderID)

	return &RepairResult{Updated: len(rides), Rides: rides}, nil
}
