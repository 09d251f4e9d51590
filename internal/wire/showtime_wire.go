package wire

import (
	"cinema-reservation/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireShowtime(r chi.Router, showtimeHandler *adaptor.ShowtimeHandler) {
	// GET /api/showtimes/{id} - showtime details incl. seats remaining
	r.Get("/api/showtimes/{id}", showtimeHandler.GetShowtime)

	// POST /api/admin/showtimes - admin scheduling; max_seats is required
	r.Post("/api/admin/showtimes", showtimeHandler.CreateShowtime)
}
