package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"cinema-reservation/internal/reservation"
	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Ticket   *TicketHandler
	Movie    *MovieHandler
	Showtime *ShowtimeHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Ticket:   NewTicketHandler(service.Ticket, log),
		Movie:    NewMovieHandler(service.Movie, log),
		Showtime: NewShowtimeHandler(service.Showtime, log),
	}
}

// handleServiceError maps service outcomes to HTTP statuses. Decision
// failures are ordinary values from the service, so the mapping is a plain
// errors.Is switch.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, reservation.ErrMovieNotFound),
		errors.Is(err, reservation.ErrShowtimeNotFound),
		errors.Is(err, reservation.ErrBookingNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, reservation.ErrInvalidIDFormat),
		errors.Is(err, reservation.ErrSeatTaken),
		errors.Is(err, reservation.ErrCapacityExceeded),
		errors.Is(err, reservation.ErrCutoffPassed),
		errors.Is(err, reservation.ErrInvalidAction),
		errors.Is(err, usecase.ErrMovieExists):
		log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, reservation.ErrContention):
		log.Warn(operation+" failed - contention", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case strings.Contains(err.Error(), "validation failed"):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
