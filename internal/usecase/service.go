package usecase

import (
	"time"

	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/reservation"
	"cinema-reservation/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Ticket   TicketService
	Movie    MovieService
	Showtime ShowtimeService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	engine := reservation.NewEngine(time.Duration(config.Reservation.CancelCutoffHours) * time.Hour)

	return &Service{
		Ticket:   NewTicketService(repo, engine, reservation.SystemClock, config.Reservation.MaxRetries, log),
		Movie:    NewMovieService(repo, log),
		Showtime: NewShowtimeService(repo, log),
	}
}
