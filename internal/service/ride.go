package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"yatra/internal/domain"
	"yatra/internal/redis"
	"yatra/internal/repository"
)

// RideService validates and persists ride records. Exactly one row per
// call; there is no update path.
type RideService struct {
	rideRepo repository.RideRepository
	cache    redis.RideCacheInterface
}

// NewRideService creates a new RideService. cache may be nil.
func NewRideService(rideRepo repository.RideRepository, cache redis.RideCacheInterface) *RideService {
	return &RideService{
		rideRepo: rideRepo,
		cache:    cache,
	}
}

// CreateRideRequest contains the full ride payload.
type CreateRideRequest struct {
	RiderID            string
	DriverID           string
	OriginAddress      string
	DestinationAddress string
	OriginLat          float64
	OriginLng          float64
	DestinationLat     float64
	DestinationLng     float64
	RideTime           int
	FarePrice          int64
	PaymentStatus      string
	PaymentIntentID    string // optional settlement idempotency key
}

// CreateRide validates every field and inserts exactly one row. On any
// validation failure, zero writes are performed.
func (s *RideService) CreateRide(ctx context.Context, req CreateRideRequest) (*domain.Ride, error) {
	if err := validateCreateRide(req); err != nil {
		return nil, err
	}

	ride := &domain.Ride{
		ID:                 uuid.New().String(),
		RiderID:            req.RiderID,
		DriverID:           req.DriverID,
		OriginAddress:      req.OriginAddress,
		DestinationAddress: req.DestinationAddress,
		OriginLat:          req.OriginLat,
		OriginLng:          req.OriginLng,
		DestinationLat:     req.DestinationLat,
		DestinationLng:     req.DestinationLng,
		RideTime:           req.RideTime,
		FarePrice:          req.FarePrice,
		PaymentStatus:      domain.PaymentStatus(req.PaymentStatus),
		PaymentIntentID:    req.PaymentIntentID,
		CreatedAt:          time.Now().UTC(),
	}

	if err := s.rideRepo.Create(ctx, ride); err != nil {
		if errors.Is(err, repository.ErrDuplicateRide) {
			return nil, err
		}
		return nil, &StoreError{Op: "create ride", Err: err}
	}

	if s.cache != nil {
		if err := s.cache.InvalidateRiderRides(ctx, ride.RiderID); err != nil {
			log.Printf("ride cache invalidation failed for rider %s: %v", ride.RiderID, err)
		}
	}

	return ride, nil
}

// GetRideByPaymentIntent returns the ride already written for a payment
// intent, or nil when none exists.
func (s *RideService) GetRideByPaymentIntent(ctx context.Context, paymentIntentID string) (*domain.Ride, error) {
	if paymentIntentID == "" {
		return nil, newValidationError("payment_intent_id", "required")
	}

	ride, err := s.rideRepo.GetByPaymentIntent(ctx, paymentIntentID)
	if err != nil {
		return nil, &StoreError{Op: "get ride by payment intent", Err: err}
	}
	return ride, nil
}

// ListRiderRides returns a rider's ride history, newest first, joined with
// driver details. Served from cache when fresh.
func (s *RideService) ListRiderRides(ctx context.Context, riderID string) ([]*domain.RideWithDriver, error) {
	if riderID == "" {
		return nil, newValidationError("rider_id", "required")
	}

	if s.cache != nil {
		cached, err := s.cache.GetRiderRides(ctx, riderID)
		if err != nil {
			log.Printf("ride cache read failed for rider %s: %v", riderID, err)
		} else if cached != nil {
			return cached, nil
		}
	}

	rides, err := s.rideRepo.ListByRider(ctx, riderID)
	if err != nil {
		return nil, &StoreError{Op: "list rides", Err: err}
	}

	if s.cache != nil {
		if err := s.cache.SetRiderRides(ctx, riderID, rides); err != nil {
			log.Printf("ride cache write failed for rider %s: %v", riderID, err)
		}
	}

	return rides, nil
}

func validateCreateRide(req CreateRideRequest) error {
	if req.RiderID == "" {
		return newValidationError("rider_id", "required")
	}
	if req.DriverID == "" {
		return newValidationError("driver_id", "required")
	}
	if req.OriginAddress == "" {
		return newValidationError("origin_address", "required")
	}
	if req.DestinationAddress == "" {
		return newValidationError("destination_address", "required")
	}
	if !isValidLatitude(req.OriginLat) || !isValidLongitude(req.OriginLng) {
		return newValidationError("origin", "coordinates out of range")
	}
	if !isValidLatitude(req.DestinationLat) || !isValidLongitude(req.DestinationLng) {
		return newValidationError("destination", "coordinates out of range")
	}
	if req.RideTime <= 0 {
		return newValidationError("ride_time", "must be positive")
	}
	if req.FarePrice <= 0 {
		return newValidationError("fare_price", "must be positive")
	}
	switch domain.PaymentStatus(req.PaymentStatus) {
	case domain.PaymentStatusPaid, domain.PaymentStatusUnpaid:
	default:
		return newValidationError("payment_status", "must be paid or unpaid")
	}
	return nil
}

func isValidLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

func isValidLongitude(lng float64) bool {
	return lng >= -180 && lng <= 180
}
