package repository

import (
	"errors"

	"cinema-reservation/pkg/database"

	"go.uber.org/zap"
)

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("repository: not found")

	// ErrVersionConflict indicates a conditional write lost the race: the
	// showtime changed between snapshot read and apply. Callers re-read and
	// retry; this error never reaches end users directly.
	ErrVersionConflict = errors.New("repository: version conflict")
)

type Repository struct {
	Movie    MovieRepository
	Showtime ShowtimeRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Movie:    NewMovieRepository(db, log),
		Showtime: NewShowtimeRepository(db, log),
	}
}
