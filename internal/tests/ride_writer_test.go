package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"yatra/internal/repository"
	"yatra/internal/service"
)

func validRideRequest() service.CreateRideRequest {
	return service.CreateRideRequest{
		RiderID:            "rider-1",
		DriverID:           "driver-1",
		OriginAddress:      "1 MG Road, Bengaluru",
		DestinationAddress: "Mysuru Palace, Mysuru",
		OriginLat:          12.9716,
		OriginLng:          77.5946,
		DestinationLat:     12.2958,
		DestinationLng:     76.6394,
		RideTime:           145,
		FarePrice:          84900,
		PaymentStatus:      "paid",
	}
}

func TestRideCreation_ValidInput_ReturnsRowWithIDAndTimestamp(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	rideService := service.NewRideService(rideRepo, nil)

	start := time.Now().UTC()

	ride, err := rideService.CreateRide(context.Background(), validRideRequest())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if ride.ID == "" {
		t.Error("expected generated ride ID")
	}
	if ride.CreatedAt.Before(start) {
		t.Errorf("expected CreatedAt >= request start, got %s < %s", ride.CreatedAt, start)
	}
	if ride.RiderID != "rider-1" || ride.DriverID != "driver-1" {
		t.Error("expected row to echo the input fields")
	}
	if ride.FarePrice != 84900 {
		t.Errorf("expected fare 84900, got %d", ride.FarePrice)
	}
	if rideRepo.CreateCallCount != 1 {
		t.Errorf("expected exactly one insert, got %d", rideRepo.CreateCallCount)
	}
}

func TestRideCreation_MissingField_NoWrites(t *testing.T) {
	t.Parallel()

	mutations := []struct {
		name   string
		mutate func(*service.CreateRideRequest)
	}{
		{"missing rider id", func(r *service.CreateRideRequest) { r.RiderID = "" }},
		{"missing driver id", func(r *service.CreateRideRequest) { r.DriverID = "" }},
		{"missing origin address", func(r *service.CreateRideRequest) { r.OriginAddress = "" }},
		{"missing destination address", func(r *service.CreateRideRequest) { r.DestinationAddress = "" }},
		{"origin latitude out of range", func(r *service.CreateRideRequest) { r.OriginLat = 91 }},
		{"destination longitude out of range", func(r *service.CreateRideRequest) { r.DestinationLng = -181 }},
		{"missing ride time", func(r *service.CreateRideRequest) { r.RideTime = 0 }},
		{"missing fare price", func(r *service.CreateRideRequest) { r.FarePrice = 0 }},
		{"negative fare price", func(r *service.CreateRideRequest) { r.FarePrice = -100 }},
		{"missing payment status", func(r *service.CreateRideRequest) { r.PaymentStatus = "" }},
		{"unknown payment status", func(r *service.CreateRideRequest) { r.PaymentStatus = "maybe" }},
	}

	for _, tc := range mutations {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rideRepo := NewMockRideRepository()
			rideService := service.NewRideService(rideRepo, nil)

			req := validRideRequest()
			tc.mutate(&req)

			_, err := rideService.CreateRide(context.Background(), req)

			var validationErr *service.ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError, got: %v", err)
			}
			if rideRepo.CreateCallCount != 0 {
				t.Errorf("expected zero writes, got %d", rideRepo.CreateCallCount)
			}
		})
	}
}

func TestRideCreation_ZeroCoordinates_Accepted(t *testing.T) {
	t.Parallel()

	// 0,0 is a valid coordinate; only out-of-range values are rejected.
	rideRepo := NewMockRideRepository()
	rideService := service.NewRideService(rideRepo, nil)

	req := validRideRequest()
	req.OriginLat = 0
	req.OriginLng = 0

	if _, err := rideService.CreateRide(context.Background(), req); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestRideCreation_StoreFailure_SurfacesStoreError(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	rideRepo.CreateError = errors.New("connection reset")
	rideService := service.NewRideService(rideRepo, nil)

	_, err := rideService.CreateRide(context.Background(), validRideRequest())

	var storeErr *service.StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("expected StoreError, got: %v", err)
	}
}

func TestRideCreation_DuplicatePaymentIntent_Rejected(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	rideService := service.NewRideService(rideRepo, nil)

	req := validRideRequest()
	req.PaymentIntentID = "pi_1"

	if _, err := rideService.CreateRide(context.Background(), req); err != nil {
		t.Fatalf("first create should succeed, got: %v", err)
	}

	_, err := rideService.CreateRide(context.Background(), req)
	if !errors.Is(err, repository.ErrDuplicateRide) {
		t.Fatalf("expected ErrDuplicateRide, got: %v", err)
	}
	if rideRepo.RideCount() != 1 {
		t.Errorf("expected exactly one stored ride, got %d", rideRepo.RideCount())
	}
}

func TestRideCreation_InvalidatesRiderCache(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	cache := NewMockRideCache()
	rideService := service.NewRideService(rideRepo, cache)

	if _, err := rideService.CreateRide(context.Background(), validRideRequest()); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if cache.InvalidateCallCount != 1 {
		t.Errorf("expected one cache invalidation, got %d", cache.InvalidateCallCount)
	}
}
