package reservation

import "errors"

// Decision failures are ordinary return values, not exceptions: the engine
// and service surface them verbatim and never leave partial state behind.
var (
	ErrMovieNotFound    = errors.New("movie not found")
	ErrInvalidIDFormat  = errors.New("invalid showtime id format")
	ErrShowtimeNotFound = errors.New("showtime not found")
	ErrSeatTaken        = errors.New("seat is already booked")
	ErrCapacityExceeded = errors.New("maximum number of seats reached")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrCutoffPassed     = errors.New("cannot cancel or change ticket this close to the showtime")
	ErrInvalidAction    = errors.New("invalid action")

	// ErrContention means the conditional-write retry budget was exhausted.
	ErrContention = errors.New("showtime is under heavy contention, try again")

	// ErrStoreUnavailable wraps persistence failures that are not version
	// conflicts; these are surfaced immediately, never retried.
	ErrStoreUnavailable = errors.New("showtime store unavailable")
)
