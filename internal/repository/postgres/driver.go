package postgres

import (
	"context"
	"database/sql"
	"errors"

	"yatra/internal/domain"
	"yatra/internal/repository"
)

// DriverRepository is a PostgreSQL implementation of repository.DriverRepository.
type DriverRepository struct {
	q Querier
}

// NewDriverRepository creates a new PostgreSQL driver repository.
func NewDriverRepository(db *sql.DB) *DriverRepository {
	return &DriverRepository{q: db}
}

// Create adds a new driver.
func (r *DriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	query := `
		INSERT INTO drivers (id, first_name, last_name, profile_image_url, car_image_url, car_seats, rating)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.q.ExecContext(ctx, query,
		driver.ID,
		driver.FirstName,
		driver.LastName,
		driver.ProfileImageURL,
		driver.CarImageURL,
		driver.CarSeats,
		driver.Rating,
	)
	return err
}

// GetByID retrieves a driver by ID.
func (r *DriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	query := `
		SELECT id, first_name, last_name, COALESCE(profile_image_url, ''), COALESCE(car_image_url, ''), car_seats, rating
		FROM drivers WHERE id = $1
	`

	var driver domain.Driver
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&driver.ID,
		&driver.FirstName,
		&driver.LastName,
		&driver.ProfileImageURL,
		&driver.CarImageURL,
		&driver.CarSeats,
		&driver.Rating,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &driver, nil
}

// GetAll retrieves all drivers.
func (r *DriverRepository) GetAll(ctx context.Context) ([]*domain.Driver, error) {
	query := `
		SELECT id, first_name, last_name, COALESCE(profile_image_url, ''), COALESCE(car_image_url, ''), car_seats, rating
		FROM drivers ORDER BY id
	`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drivers []*domain.Driver
	for rows.Next() {
		var driver domain.Driver
		if err := rows.Scan(
			&driver.ID,
			&driver.FirstName,
			&driver.LastName,
			&driver.ProfileImageURL,
			&driver.CarImageURL,
			&driver.CarSeats,
			&driver.Rating,
		); err != nil {
			return nil, err
		}
		drivers = append(drivers, &driver)
	}
	return drivers, rows.Err()
}
