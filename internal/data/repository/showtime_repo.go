package repository

import (
	"context"
	"errors"
	"fmt"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ShowtimeRepository is the durable store behind the reservation core. The
// booking collection lives embedded on the showtime row (jsonb) together
// with a version counter, so every mutation is a single conditional write.
type ShowtimeRepository interface {
	Create(ctx context.Context, showtime *entity.Showtime) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Showtime, error)

	// CompareAndApply replaces the showtime's booking collection only if
	// the row still carries expectedVersion, bumping the version on
	// success. Returns ErrVersionConflict when the row moved on, ErrNotFound
	// when the showtime does not exist.
	CompareAndApply(ctx context.Context, id uuid.UUID, expectedVersion int64, bookings []entity.Booking) error

	// FindByBookingUser returns every showtime whose booking collection
	// contains at least one booking for userID. No match is an empty
	// result, not an error.
	FindByBookingUser(ctx context.Context, userID string) ([]*entity.Showtime, error)
}

type showtimeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewShowtimeRepository(db database.PgxIface, log *zap.Logger) ShowtimeRepository {
	return &showtimeRepository{
		db:  db,
		log: log.With(zap.String("repository", "showtime")),
	}
}

func (r *showtimeRepository) Create(ctx context.Context, showtime *entity.Showtime) error {
	query := `
		INSERT INTO showtimes (id, movie_id, theater, start_time, max_seats, bookings, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	bookings := showtime.Bookings
	if bookings == nil {
		bookings = []entity.Booking{}
	}

	_, err := r.db.Exec(ctx, query,
		showtime.ID,
		showtime.MovieID,
		showtime.Theater,
		showtime.StartTime,
		showtime.MaxSeats,
		bookings,
		showtime.Version,
		showtime.CreatedAt,
		showtime.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create showtime",
			zap.Error(err),
			zap.String("showtime_id", showtime.ID.String()),
			zap.String("movie_id", showtime.MovieID.String()),
		)
		return fmt.Errorf("create showtime %s: %w", showtime.ID.String(), err)
	}

	return nil
}

func (r *showtimeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Showtime, error) {
	query := `
		SELECT id, movie_id, theater, start_time, max_seats, bookings, version, created_at, updated_at
		FROM showtimes
		WHERE id = $1
	`

	var showtime entity.Showtime
	err := r.db.QueryRow(ctx, query, id).Scan(
		&showtime.ID,
		&showtime.MovieID,
		&showtime.Theater,
		&showtime.StartTime,
		&showtime.MaxSeats,
		&showtime.Bookings,
		&showtime.Version,
		&showtime.CreatedAt,
		&showtime.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		r.log.Error("Failed to find showtime by ID",
			zap.Error(err),
			zap.String("showtime_id", id.String()),
		)
		return nil, fmt.Errorf("find showtime by ID %s: %w", id.String(), err)
	}

	if showtime.Bookings == nil {
		showtime.Bookings = []entity.Booking{}
	}

	return &showtime, nil
}

func (r *showtimeRepository) CompareAndApply(ctx context.Context, id uuid.UUID, expectedVersion int64, bookings []entity.Booking) error {
	query := `
		UPDATE showtimes
		SET bookings = $3, version = version + 1, updated_at = now()
		WHERE id = $1 AND version = $2
	`

	if bookings == nil {
		bookings = []entity.Booking{}
	}

	result, err := r.db.Exec(ctx, query, id, expectedVersion, bookings)
	if err != nil {
		r.log.Error("Failed to apply booking delta",
			zap.Error(err),
			zap.String("showtime_id", id.String()),
			zap.Int64("expected_version", expectedVersion),
		)
		return fmt.Errorf("apply bookings for showtime %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		// Zero rows means either the showtime is gone or the version moved
		// on; distinguish so only the latter is retried.
		var exists bool
		checkQuery := `SELECT EXISTS (SELECT 1 FROM showtimes WHERE id = $1)`
		if err := r.db.QueryRow(ctx, checkQuery, id).Scan(&exists); err != nil {
			return fmt.Errorf("check showtime %s existence: %w", id.String(), err)
		}
		if !exists {
			return ErrNotFound
		}

		r.log.Debug("Conditional write lost the race",
			zap.String("showtime_id", id.String()),
			zap.Int64("expected_version", expectedVersion),
		)
		return ErrVersionConflict
	}

	return nil
}

func (r *showtimeRepository) FindByBookingUser(ctx context.Context, userID string) ([]*entity.Showtime, error) {
	query := `
		SELECT id, movie_id, theater, start_time, max_seats, bookings, version, created_at, updated_at
		FROM showtimes
		WHERE bookings @> jsonb_build_array(jsonb_build_object('userId', $1::text))
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find showtimes by booking user",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("find showtimes by booking user %s: %w", userID, err)
	}
	defer rows.Close()

	var showtimes []*entity.Showtime
	for rows.Next() {
		var showtime entity.Showtime
		err := rows.Scan(
			&showtime.ID,
			&showtime.MovieID,
			&showtime.Theater,
			&showtime.StartTime,
			&showtime.MaxSeats,
			&showtime.Bookings,
			&showtime.Version,
			&showtime.CreatedAt,
			&showtime.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan showtime row", zap.Error(err))
			return nil, fmt.Errorf("scan showtime row: %w", err)
		}
		showtimes = append(showtimes, &showtime)
	}

	return showtimes, rows.Err()
}
