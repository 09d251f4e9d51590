package response

import (
	"time"

	"cinema-reservation/internal/data/entity"
)

type ShowtimeResponse struct {
	ID             string    `json:"id"`
	MovieID        string    `json:"movie_id"`
	Theater        string    `json:"theater"`
	StartTime      time.Time `json:"start_time"`
	MaxSeats       int       `json:"max_seats"`
	SeatsBooked    int       `json:"seats_booked"`
	SeatsRemaining int       `json:"seats_remaining"`
}

func ShowtimeToResponse(showtime *entity.Showtime) ShowtimeResponse {
	return ShowtimeResponse{
		ID:             showtime.ID.String(),
		MovieID:        showtime.MovieID.String(),
		Theater:        showtime.Theater,
		StartTime:      showtime.StartTime,
		MaxSeats:       showtime.MaxSeats,
		SeatsBooked:    len(showtime.Bookings),
		SeatsRemaining: showtime.SeatsRemaining(),
	}
}
