package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"yatra/internal/domain"
	"yatra/internal/repository"
)

// uniqueViolation is the PostgreSQL error code for unique constraint breaks.
const uniqueViolation = "23505"

// RideRepository is a PostgreSQL implementation of repository.RideRepository.
type RideRepository struct {
	q Querier
}

// NewRideRepository creates a new PostgreSQL ride repository.
func NewRideRepository(db *sql.DB) *RideRepository {
	return &RideRepository{q: db}
}

// NewRideRepositoryWithTx creates a ride repository using a transaction.
func NewRideRepositoryWithTx(tx *sql.Tx) *RideRepository {
	return &RideRepository{q: tx}
}

// Create persists a new ride.
func (r *RideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	query := `
		INSERT INTO rides (id, rider_id, driver_id, origin_address, destination_address, origin_lat, origin_lng, destination_lat, destination_lng, ride_time, fare_price, payment_status, payment_intent_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	var riderID sql.NullString
	if ride.RiderID != "" {
		riderID = sql.NullString{String: ride.RiderID, Valid: true}
	}

	var paymentIntentID sql.NullString
	if ride.PaymentIntentID != "" {
		paymentIntentID = sql.NullString{String: ride.PaymentIntentID, Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		ride.ID,
		riderID,
		ride.DriverID,
		ride.OriginAddress,
		ride.DestinationAddress,
		ride.OriginLat,
		ride.OriginLng,
		ride.DestinationLat,
		ride.DestinationLng,
		ride.RideTime,
		ride.FarePrice,
		ride.PaymentStatus,
		paymentIntentID,
		ride.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return repository.ErrDuplicateRide
		}
		return err
	}

	return nil
}

const rideColumns = `id, COALESCE(rider_id, ''), driver_id, origin_address, destination_address, origin_lat, origin_lng, destination_lat, destination_lng, ride_time, fare_price, payment_status, COALESCE(payment_intent_id, ''), created_at`

func scanRide(row interface{ Scan(...any) error }) (*domain.Ride, error) {
	var ride domain.Ride
	err := row.Scan(
		&ride.ID,
		&ride.RiderID,
		&ride.DriverID,
		&ride.OriginAddress,
		&ride.DestinationAddress,
		&ride.OriginLat,
		&ride.OriginLng,
		&ride.DestinationLat,
		&ride.DestinationLng,
		&ride.RideTime,
		&ride.FarePrice,
		&ride.PaymentStatus,
		&ride.PaymentIntentID,
		&ride.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ride, nil
}

// GetByID retrieves a ride by ID.
func (r *RideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE id = $1`

	ride, err := scanRide(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return ride, nil
}

// GetByPaymentIntent retrieves the ride written for a payment intent.
// Returns nil, nil when no such ride exists.
func (r *RideRepository) GetByPaymentIntent(ctx context.Context, paymentIntentID string) (*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE payment_intent_id = $1`

	ride, err := scanRide(r.q.QueryRowContext(ctx, query, paymentIntentID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return ride, nil
}

// ListByRider retrieves a rider's rides joined with driver details, newest first.
func (r *RideRepository) ListByRider(ctx context.Context, riderID string) ([]*domain.RideWithDriver, error) {
	query := `
		SELECT
			rides.id, COALESCE(rides.rider_id, ''), rides.driver_id,
			rides.origin_address, rides.destination_address,
			rides.origin_lat, rides.origin_lng, rides.destination_lat, rides.destination_lng,
			rides.ride_time, rides.fare_price, rides.payment_status,
			COALESCE(rides.payment_intent_id, ''), rides.created_at,
			drivers.id, drivers.first_name, drivers.last_name,
			COALESCE(drivers.profile_image_url, ''), COALESCE(drivers.car_image_url, ''),
			drivers.car_seats, drivers.rating
		FROM rides
		INNER JOIN drivers ON rides.driver_id = drivers.id
		WHERE rides.rider_id = $1
		ORDER BY rides.created_at DESC
	`

	rows, err := r.q.QueryContext(ctx, query, riderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rides []*domain.RideWithDriver
	for rows.Next() {
		var rd domain.RideWithDriver
		if err := rows.Scan(
			&rd.ID,
			&rd.RiderID,
			&rd.DriverID,
			&rd.OriginAddress,
			&rd.DestinationAddress,
			&rd.OriginLat,
			&rd.OriginLng,
			&rd.DestinationLat,
			&rd.DestinationLng,
			&rd.RideTime,
			&rd.FarePrice,
			&rd.PaymentStatus,
			&rd.PaymentIntentID,
			&rd.CreatedAt,
			&rd.Driver.ID,
			&rd.Driver.FirstName,
			&rd.Driver.LastName,
			&rd.Driver.ProfileImageURL,
			&rd.Driver.CarImageURL,
			&rd.Driver.CarSeats,
			&rd.Driver.Rating,
		); err != nil {
			return nil, err
		}
		rides = append(rides, &rd)
	}
	return rides, rows.Err()
}

// EnsureRiderColumn makes sure the rider_id column exists on rides.
// Rows written before rider association shipped predate the column.
func (r *RideRepository) EnsureRiderColumn(ctx context.Context) error {
	check := `
		SELECT COUNT(*)
		FROM information_schema.columns
		WHERE table_name = 'rides' AND column_name = 'rider_id'
	`

	var count int
	if err := r.q.QueryRowContext(ctx, check).Scan(&count); err != nil {
		return err
	}

	if count == 0 {
		if _, err := r.q.ExecContext(ctx, `ALTER TABLE rides ADD COLUMN rider_id TEXT`); err != nil {
			return err
		}
	}

	return nil
}

// BackfillRider assigns riderID to every ride whose rider association is
// NULL or empty and returns the updated rows. This is a global sweep, not
// scoped to the caller's own history.
func (r *RideRepository) BackfillRider(ctx context.Context, riderID string) ([]*domain.Ride, error) {
	query := `
		UPDATE rides
		SET rider_id = $1
		WHERE rider_id IS NULL OR rider_id = ''
		RETURNING ` + rideColumns

	rows, err := r.q.QueryContext(ctx, query, riderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rides []*domain.Ride
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return nil, err
		}
		rides = append(rides, ride)
	}
	return rides, rows.Err()
}
