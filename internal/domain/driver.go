package domain

// Driver represents a driver in the directory that rides are booked against.
type Driver struct {
	ID              string
	FirstName       string
	LastName        string
	ProfileImageURL string
	CarImageURL     string
	CarSeats        int
	Rating          float64
}
