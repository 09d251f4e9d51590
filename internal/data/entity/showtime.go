package entity

import (
	"time"

	"github.com/google/uuid"
)

// Showtime is a scheduled screening with a fixed seat capacity and an
// embedded booking collection. Version increments on every accepted change
// to Bookings and guards conditional writes.
type Showtime struct {
	ID        uuid.UUID `db:"id"`
	MovieID   uuid.UUID `db:"movie_id"`
	Theater   string    `db:"theater"`
	StartTime time.Time `db:"start_time"`
	MaxSeats  int       `db:"max_seats"`
	Bookings  []Booking `db:"bookings"`
	Version   int64     `db:"version"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// FindBooking returns the booking matching (userID, seatNumber), or nil.
func (s *Showtime) FindBooking(userID string, seatNumber int) *Booking {
	for i := range s.Bookings {
		if s.Bookings[i].UserID == userID && s.Bookings[i].SeatNumber == seatNumber {
			return &s.Bookings[i]
		}
	}
	return nil
}

// SeatTaken reports whether any booking already holds seatNumber.
func (s *Showtime) SeatTaken(seatNumber int) bool {
	for i := range s.Bookings {
		if s.Bookings[i].SeatNumber == seatNumber {
			return true
		}
	}
	return false
}

// SeatsRemaining returns the free capacity of the showtime.
func (s *Showtime) SeatsRemaining() int {
	return s.MaxSeats - len(s.Bookings)
}
