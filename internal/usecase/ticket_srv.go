package usecase

import (
	"context"
	"errors"
	"fmt"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/dto/response"
	"cinema-reservation/internal/reservation"
	"cinema-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TicketService interface {
	BookTicket(ctx context.Context, req *request.BookTicketRequest) (*response.TicketResponse, error)
	UpdateTicket(ctx context.Context, req *request.UpdateTicketRequest) (*response.TicketResponse, error)
	ListUserBookings(ctx context.Context, userID string) ([]response.TicketResponse, error)
}

// ticketService orchestrates Clock, store and engine. Mutations run a
// read-decide-apply cycle: snapshot the showtime, let the engine decide
// against that exact snapshot, then apply the delta under a version check.
// A lost race re-runs the whole cycle against a fresh snapshot, so two
// concurrent bookers of the same seat can never both succeed. No locks are
// held across the cycle.
type ticketService struct {
	repo       *repository.Repository
	engine     *reservation.Engine
	clock      reservation.Clock
	maxRetries int
	log        *zap.Logger
}

func NewTicketService(repo *repository.Repository, engine *reservation.Engine, clock reservation.Clock, maxRetries int, log *zap.Logger) TicketService {
	return &ticketService{
		repo:       repo,
		engine:     engine,
		clock:      clock,
		maxRetries: maxRetries,
		log:        log.With(zap.String("service", "ticket")),
	}
}

func (s *ticketService) BookTicket(ctx context.Context, req *request.BookTicketRequest) (*response.TicketResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Book ticket validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	movie, err := s.repo.Movie.FindByTitle(ctx, req.MovieTitle)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, reservation.ErrMovieNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s", reservation.ErrStoreUnavailable, err)
	}

	showtimeID, err := uuid.Parse(req.ShowtimeID)
	if err != nil {
		return nil, reservation.ErrInvalidIDFormat
	}

	booking, err := entity.NewBooking(req.UserID, req.SeatNumber, req.Price, movie.Title, req.Theater)
	if err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		showtime, err := s.findShowtime(ctx, showtimeID)
		if err != nil {
			return nil, err
		}

		delta, err := s.engine.DecideBook(showtime, booking)
		if err != nil {
			return nil, err
		}

		err = s.repo.Showtime.CompareAndApply(ctx, showtime.ID, showtime.Version, delta.Apply(showtime.Bookings))
		if errors.Is(err, repository.ErrVersionConflict) {
			s.log.Debug("Book ticket retrying after conflict",
				zap.String("showtime_id", req.ShowtimeID),
				zap.Int("attempt", attempt),
			)
			continue
		}
		if err != nil {
			return nil, s.mapStoreError(err)
		}

		s.log.Info("Ticket booked",
			zap.String("showtime_id", req.ShowtimeID),
			zap.String("user_id", req.UserID),
			zap.Int("seat_number", req.SeatNumber),
			zap.Float64("price", req.Price),
			zap.Int("attempt", attempt),
		)

		resp := response.BookingToTicketResponse(req.ShowtimeID, booking)
		return &resp, nil
	}

	s.log.Warn("Book ticket retry budget exhausted",
		zap.String("showtime_id", req.ShowtimeID),
		zap.String("user_id", req.UserID),
		zap.Int("max_retries", s.maxRetries),
	)
	return nil, reservation.ErrContention
}

func (s *ticketService) UpdateTicket(ctx context.Context, req *request.UpdateTicketRequest) (*response.TicketResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update ticket validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	switch req.Action {
	case request.ActionCancel:
	case request.ActionChange:
		if req.NewSeatNumber == nil {
			return nil, reservation.ErrInvalidAction
		}
	default:
		return nil, reservation.ErrInvalidAction
	}

	showtimeID, err := uuid.Parse(req.ShowtimeID)
	if err != nil {
		return nil, reservation.ErrInvalidIDFormat
	}

	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		showtime, err := s.findShowtime(ctx, showtimeID)
		if err != nil {
			return nil, err
		}

		now := s.clock.Now()

		var delta reservation.Delta
		if req.Action == request.ActionCancel {
			delta, err = s.engine.DecideCancel(showtime, req.UserID, req.SeatNumber, now)
		} else {
			delta, err = s.engine.DecideChange(showtime, req.UserID, req.SeatNumber, *req.NewSeatNumber, now)
		}
		if err != nil {
			return nil, err
		}

		err = s.repo.Showtime.CompareAndApply(ctx, showtime.ID, showtime.Version, delta.Apply(showtime.Bookings))
		if errors.Is(err, repository.ErrVersionConflict) {
			s.log.Debug("Update ticket retrying after conflict",
				zap.String("showtime_id", req.ShowtimeID),
				zap.Int("attempt", attempt),
			)
			continue
		}
		if err != nil {
			return nil, s.mapStoreError(err)
		}

		s.log.Info("Ticket updated",
			zap.String("showtime_id", req.ShowtimeID),
			zap.String("user_id", req.UserID),
			zap.String("action", req.Action),
			zap.Int("seat_number", req.SeatNumber),
			zap.Int("attempt", attempt),
		)

		result := delta.Booking
		if req.Action == request.ActionChange {
			result.SeatNumber = *req.NewSeatNumber
		}
		resp := response.BookingToTicketResponse(req.ShowtimeID, result)
		return &resp, nil
	}

	s.log.Warn("Update ticket retry budget exhausted",
		zap.String("showtime_id", req.ShowtimeID),
		zap.String("user_id", req.UserID),
		zap.Int("max_retries", s.maxRetries),
	)
	return nil, reservation.ErrContention
}

func (s *ticketService) ListUserBookings(ctx context.Context, userID string) ([]response.TicketResponse, error) {
	showtimes, err := s.repo.Showtime.FindByBookingUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", reservation.ErrStoreUnavailable, err)
	}

	// A user with no bookings gets an empty list, not an error.
	records := make([]response.TicketResponse, 0)
	for _, showtime := range showtimes {
		for _, booking := range showtime.Bookings {
			if booking.UserID != userID {
				continue
			}
			records = append(records, response.BookingToTicketResponse(showtime.ID.String(), booking))
		}
	}

	s.log.Info("User bookings retrieved",
		zap.String("user_id", userID),
		zap.Int("count", len(records)),
	)

	return records, nil
}

func (s *ticketService) findShowtime(ctx context.Context, id uuid.UUID) (*entity.Showtime, error) {
	showtime, err := s.repo.Showtime.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, reservation.ErrShowtimeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s", reservation.ErrStoreUnavailable, err)
	}
	return showtime, nil
}

func (s *ticketService) mapStoreError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return reservation.ErrShowtimeNotFound
	}
	return fmt.Errorf("%w: %s", reservation.ErrStoreUnavailable, err)
}
