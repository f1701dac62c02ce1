package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicateRide is returned when a ride insert collides with the
	// unique payment-intent constraint. The intent has already settled.
	ErrDuplicateRide = errors.New("ride already recorded for payment intent")
)
