package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/dto/response"
	"cinema-reservation/internal/reservation"
	"cinema-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ShowtimeService interface {
	CreateShowtime(ctx context.Context, req *request.CreateShowtimeRequest) (*response.ShowtimeResponse, error)
	GetShowtime(ctx context.Context, id string) (*response.ShowtimeResponse, error)
}

type showtimeService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewShowtimeService(repo *repository.Repository, log *zap.Logger) ShowtimeService {
	return &showtimeService{
		repo: repo,
		log:  log.With(zap.String("service", "showtime")),
	}
}

func (s *showtimeService) CreateShowtime(ctx context.Context, req *request.CreateShowtimeRequest) (*response.ShowtimeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create showtime validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	movie, err := s.repo.Movie.FindByTitle(ctx, req.MovieTitle)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, reservation.ErrMovieNotFound
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	showtime := &entity.Showtime{
		ID:        uuid.New(),
		MovieID:   movie.ID,
		Theater:   req.Theater,
		StartTime: req.StartTime,
		MaxSeats:  req.MaxSeats,
		Bookings:  []entity.Booking{},
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Showtime.Create(ctx, showtime); err != nil {
		s.log.Error("Failed to create showtime",
			zap.Error(err),
			zap.String("movie_title", req.MovieTitle),
			zap.String("theater", req.Theater),
		)
		return nil, err
	}

	s.log.Info("Showtime created",
		zap.String("showtime_id", showtime.ID.String()),
		zap.String("movie_id", movie.ID.String()),
		zap.String("theater", showtime.Theater),
		zap.Time("start_time", showtime.StartTime),
		zap.Int("max_seats", showtime.MaxSeats),
	)

	resp := response.ShowtimeToResponse(showtime)
	return &resp, nil
}

func (s *showtimeService) GetShowtime(ctx context.Context, id string) (*response.ShowtimeResponse, error) {
	showtimeID, err := uuid.Parse(id)
	if err != nil {
		return nil, reservation.ErrInvalidIDFormat
	}

	showtime, err := s.repo.Showtime.FindByID(ctx, showtimeID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, reservation.ErrShowtimeNotFound
	}
	if err != nil {
		return nil, err
	}

	resp := response.ShowtimeToResponse(showtime)
	return &resp, nil
}
