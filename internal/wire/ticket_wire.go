package wire

import (
	"cinema-reservation/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireTicket(r chi.Router, ticketHandler *adaptor.TicketHandler) {
	// POST /api/tickets - book a seat on a showtime
	r.Post("/api/tickets", ticketHandler.BookTicket)

	// PUT /api/tickets - cancel or change an existing booking
	r.Put("/api/tickets", ticketHandler.UpdateTicket)

	// GET /api/users/{userId}/bookings - booking history for a user
	r.Get("/api/users/{userId}/bookings", ticketHandler.GetUserBookings)
}
