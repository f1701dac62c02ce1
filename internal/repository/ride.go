package repository

import (
	"context"

	"yatra/internal/domain"
)

// RideRepository defines the persistence operations for rides.
// There is deliberately no update or delete path: settlement writes a row
// exactly once, and the only mutation anywhere is the repair backfill.
type RideRepository interface {
	// Create persists a new ride. Returns ErrDuplicateRide if a row for
	// the same payment intent already exists.
	Create(ctx context.Context, ride *domain.Ride) error

	// GetByID retrieves a ride by ID.
	GetByID(ctx context.Context, id string) (*domain.Ride, error)

	// GetByPaymentIntent retrieves the ride written for a payment intent.
	// Returns nil, nil when no such ride exists.
	GetByPaymentIntent(ctx context.Context, paymentIntentID string) (*domain.Ride, error)

	// ListByRider retrieves a rider's rides joined with driver details,
	// newest first.
	ListByRider(ctx context.Context, riderID string) ([]*domain.RideWithDriver, error)

	// EnsureRiderColumn makes sure the rider association column exists.
	// One-time migration safety net for rows created before the column was.
	EnsureRiderColumn(ctx context.Context) error

	// BackfillRider assigns riderID to every ride whose rider association
	// is NULL or empty and returns the updated rows.
	BackfillRider(ctx context.Context, riderID string) ([]*domain.Ride, error)
}
