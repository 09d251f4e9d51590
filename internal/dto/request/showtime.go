package request

import "time"

// CreateShowtimeRequest requires an explicit capacity; there is no silent
// default seat count.
type CreateShowtimeRequest struct {
	MovieTitle string    `json:"movie_title" validate:"required"`
	Theater    string    `json:"theater" validate:"required"`
	StartTime  time.Time `json:"start_time" validate:"required"`
	MaxSeats   int       `json:"max_seats" validate:"required,gt=0"`
}
