package request

// BookTicketRequest books one seat on one showtime. The caller supplies the
// price; the core records it verbatim and never recomputes it.
type BookTicketRequest struct {
	UserID     string  `json:"userId" validate:"required"`
	MovieTitle string  `json:"movie_title" validate:"required"`
	ShowtimeID string  `json:"showtime_id" validate:"required"`
	SeatNumber int     `json:"seat_number" validate:"required,gt=0"`
	Price      float64 `json:"price" validate:"gte=0"`
	Theater    string  `json:"theater" validate:"required"`
}

// UpdateTicketRequest cancels or re-seats an existing booking. Action must
// be "cancel" or "change"; "change" requires new_seat_number. Both rules are
// enforced by the service so violations surface as invalid-action outcomes.
type UpdateTicketRequest struct {
	UserID        string `json:"userId" validate:"required"`
	ShowtimeID    string `json:"showtime_id" validate:"required"`
	SeatNumber    int    `json:"seat_number" validate:"required,gt=0"`
	NewSeatNumber *int   `json:"new_seat_number,omitempty" validate:"omitempty,gt=0"`
	Action        string `json:"action" validate:"required"`
}

const (
	ActionCancel = "cancel"
	ActionChange = "change"
)
