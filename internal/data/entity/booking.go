package entity

import "errors"

var (
	ErrInvalidSeatNumber = errors.New("seat number must be positive")
	ErrInvalidPrice      = errors.New("price must not be negative")
	ErrUserIDRequired    = errors.New("user ID is required")
)

// Booking is one user's claim on one seat for one showtime. It only exists
// inside its parent Showtime's booking collection; (userId, seat_number) is
// unique within a showtime. Movie title and theater are denormalized at
// booking time so history lookups need no joins.
//
// The JSON shape is also the persisted shape of the showtime's bookings
// column, so field names are part of the storage contract.
type Booking struct {
	UserID     string  `json:"userId"`
	SeatNumber int     `json:"seat_number"`
	Price      float64 `json:"price"`
	MovieTitle string  `json:"movie_title"`
	Theater    string  `json:"theater"`
}

// NewBooking validates attributes at construction.
func NewBooking(userID string, seatNumber int, price float64, movieTitle, theater string) (Booking, error) {
	if userID == "" {
		return Booking{}, ErrUserIDRequired
	}
	if seatNumber <= 0 {
		return Booking{}, ErrInvalidSeatNumber
	}
	if price < 0 {
		return Booking{}, ErrInvalidPrice
	}
	return Booking{
		UserID:     userID,
		SeatNumber: seatNumber,
		Price:      price,
		MovieTitle: movieTitle,
		Theater:    theater,
	}, nil
}
