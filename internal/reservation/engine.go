package reservation

import (
	"time"

	"cinema-reservation/internal/data/entity"
)

// DeltaOp identifies the single mutation an accepted decision applies to a
// showtime's booking collection.
type DeltaOp string

const (
	DeltaInsert DeltaOp = "insert"
	DeltaRemove DeltaOp = "remove"
	DeltaReseat DeltaOp = "reseat"
)

// Delta is the minimal change produced by an accepted decision. It is
// computed against one exact snapshot and only valid for that snapshot;
// the store applies it under a version check.
type Delta struct {
	Op            DeltaOp
	Booking       entity.Booking
	NewSeatNumber int
}

// Apply materializes the delta against a snapshot's booking collection,
// returning a fresh slice. The input is never mutated.
func (d Delta) Apply(bookings []entity.Booking) []entity.Booking {
	switch d.Op {
	case DeltaInsert:
		out := make([]entity.Booking, 0, len(bookings)+1)
		out = append(out, bookings...)
		return append(out, d.Booking)
	case DeltaRemove:
		out := make([]entity.Booking, 0, len(bookings))
		for _, b := range bookings {
			if b.UserID == d.Booking.UserID && b.SeatNumber == d.Booking.SeatNumber {
				continue
			}
			out = append(out, b)
		}
		return out
	case DeltaReseat:
		out := make([]entity.Booking, len(bookings))
		copy(out, bookings)
		for i := range out {
			if out[i].UserID == d.Booking.UserID && out[i].SeatNumber == d.Booking.SeatNumber {
				out[i].SeatNumber = d.NewSeatNumber
			}
		}
		return out
	}
	return bookings
}

// Engine is the pure decision core: given a showtime snapshot and a
// requested action it either accepts with a Delta or rejects with a
// sentinel error. It performs no I/O and never blocks.
type Engine struct {
	cutoff time.Duration
}

// NewEngine builds an engine with the given cancel/change cutoff, the
// window before start time in which cancel and change are frozen.
func NewEngine(cutoff time.Duration) *Engine {
	return &Engine{cutoff: cutoff}
}

// DecideBook accepts unless the seat is taken or the showtime is full.
// Booking deliberately has no cutoff check: new bookings may be made any
// time before the show, while cancel/change freeze near showtime.
func (e *Engine) DecideBook(st *entity.Showtime, booking entity.Booking) (Delta, error) {
	if st.SeatTaken(booking.SeatNumber) {
		return Delta{}, ErrSeatTaken
	}
	if len(st.Bookings) >= st.MaxSeats {
		return Delta{}, ErrCapacityExceeded
	}
	return Delta{Op: DeltaInsert, Booking: booking}, nil
}

// DecideCancel removes the (userID, seatNumber) booking. Existence is
// checked before the cutoff so a nonexistent booking reports not-found
// even past the cutoff.
func (e *Engine) DecideCancel(st *entity.Showtime, userID string, seatNumber int, now time.Time) (Delta, error) {
	booking := st.FindBooking(userID, seatNumber)
	if booking == nil {
		return Delta{}, ErrBookingNotFound
	}
	if e.pastCutoff(st, now) {
		return Delta{}, ErrCutoffPassed
	}
	return Delta{Op: DeltaRemove, Booking: *booking}, nil
}

// DecideChange moves the (userID, seatNumber) booking to newSeatNumber.
// Check order is fixed: existence, then cutoff, then new-seat collision.
// Re-seating to the booking's own current seat is an accepted no-op.
func (e *Engine) DecideChange(st *entity.Showtime, userID string, seatNumber, newSeatNumber int, now time.Time) (Delta, error) {
	booking := st.FindBooking(userID, seatNumber)
	if booking == nil {
		return Delta{}, ErrBookingNotFound
	}
	if e.pastCutoff(st, now) {
		return Delta{}, ErrCutoffPassed
	}
	if newSeatNumber != seatNumber && st.SeatTaken(newSeatNumber) {
		return Delta{}, ErrSeatTaken
	}
	return Delta{Op: DeltaReseat, Booking: *booking, NewSeatNumber: newSeatNumber}, nil
}

// pastCutoff is exclusive at the boundary: exactly cutoff before start is
// still allowed, only strictly later fails.
func (e *Engine) pastCutoff(st *entity.Showtime, now time.Time) bool {
	return now.After(st.StartTime.Add(-e.cutoff))
}
