package domain

import "time"

// PaymentStatus represents the settlement state recorded on a ride.
type PaymentStatus string

const (
	PaymentStatusPaid   PaymentStatus = "paid"
	PaymentStatusUnpaid PaymentStatus = "unpaid"
)

// Ride represents a booked, paid trip. Rows are written exactly once at
// settlement and are immutable afterwards, except for the rider backfill
// performed by the repair sweep.
type Ride struct {
	ID                 string
	RiderID            string // empty only for rows predating rider association
	DriverID           string
	OriginAddress      string
	DestinationAddress string
	OriginLat          float64
	OriginLng          float64
	DestinationLat     float64
	DestinationLng     float64
	RideTime           int   // estimated trip duration in minutes
	FarePrice          int64 // minor currency units
	PaymentStatus      PaymentStatus
	PaymentIntentID    string // settlement idempotency key, unique when set
	CreatedAt          time.Time
}

// RideWithDriver is a ride joined with its driver's public details,
// as returned by the rider's ride-history listing.
type RideWithDriver struct {
	Ride
	Driver Driver
}
