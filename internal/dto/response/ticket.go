package response

import "cinema-reservation/internal/data/entity"

// TicketResponse is the flat booking record shared by booking results and
// the per-user history listing.
type TicketResponse struct {
	ShowtimeID string  `json:"showtime_id"`
	UserID     string  `json:"userId"`
	MovieTitle string  `json:"movie_title"`
	Theater    string  `json:"theater"`
	SeatNumber int     `json:"seat_number"`
	Price      float64 `json:"price"`
}

func BookingToTicketResponse(showtimeID string, booking entity.Booking) TicketResponse {
	return TicketResponse{
		ShowtimeID: showtimeID,
		UserID:     booking.UserID,
		MovieTitle: booking.MovieTitle,
		Theater:    booking.Theater,
		SeatNumber: booking.SeatNumber,
		Price:      booking.Price,
	}
}
