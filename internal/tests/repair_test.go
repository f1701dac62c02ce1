package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"yatra/internal/domain"
	"yatra/internal/service"
)

func TestRepair_BackfillsOnlyUnassociatedRides(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	rideRepo.AddRide(&domain.Ride{ID: "ride-1", RiderID: "", DriverID: "driver-1", CreatedAt: time.Now()})
	rideRepo.AddRide(&domain.Ride{ID: "ride-2", RiderID: "", DriverID: "driver-1", CreatedAt: time.Now()})
	rideRepo.AddRide(&domain.Ride{ID: "ride-3", RiderID: "r2", DriverID: "driver-2", CreatedAt: time.Now()})

	repairService := service.NewRepairService(rideRepo, nil)

	result, err := repairService.BackfillRider(context.Background(), "r1")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if result.Updated != 2 {
		t.Errorf("expected 2 rides updated, got %d", result.Updated)
	}
	if len(result.Rides) != 2 {
		t.Errorf("expected 2 updated rows returned, got %d", len(result.Rides))
	}
	for _, ride := range result.Rides {
		if ride.RiderID != "r1" {
			t.Errorf("expected rider r1 on ride %s, got %q", ride.ID, ride.RiderID)
		}
	}

	// Rows already bound to a different rider stay untouched.
	if got := rideRepo.GetRide("ride-3").RiderID; got != "r2" {
		t.Errorf("expected ride-3 to keep rider r2, got %q", got)
	}
}

func TestRepair_EnsuresRiderColumnFirst(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	repairService := service.NewRepairService(rideRepo, nil)

	if _, err := repairService.BackfillRider(context.Background(), "r1"); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if rideRepo.EnsureColumnCallCount != 1 {
		t.Errorf("expected column safety net invoked once, got %d", rideRepo.EnsureColumnCallCount)
	}
}

func TestRepair_MissingRiderID_Rejected(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	repairService := service.NewRepairService(rideRepo, nil)

	_, err := repairService.BackfillRider(context.Background(), "")

	var validationErr *service.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got: %v", err)
	}
	if rideRepo.BackfillCallCount != 0 {
		t.Error("expected no sweep on validation failure")
	}
}

func TestRepair_StoreFailure_SurfacesStoreError(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	rideRepo.BackfillError = errors.New("relation rides does not exist")
	repairService := service.NewRepairService(rideRepo, nil)

	_, err := repairService.BackfillRider(context.Background(), "r1")

	var storeErr *service.StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("expected StoreError, got: %v", err)
	}
}

func TestRepair_NothingToBackfill_ZeroCountNoInvalidation(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	rideRepo.AddRide(&domain.Ride{ID: "ride-1", RiderID: "r2", DriverID: "driver-1", CreatedAt: time.Now()})
	cache := NewMockRideCache()

	repairService := service.NewRepairService(rideRepo, cache)

	result, err := repairService.BackfillRider(context.Background(), "r1")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if result.Updated != 0 {
		t.Errorf("expected zero updates, got %d", result.Updated)
	}
	if cache.InvalidateCallCount != 0 {
		t.Error("expected no cache invalidation when nothing changed")
	}
}
