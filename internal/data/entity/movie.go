package entity

import (
	"time"

	"github.com/google/uuid"
)

// Movie is immutable reference data; the reservation flow only reads it.
type Movie struct {
	ID                uuid.UUID `db:"id"`
	Title             string    `db:"title"`
	Genre             string    `db:"genre"`
	DurationInMinutes int       `db:"duration_in_minutes"`
	Rating            float64   `db:"rating"`
	ReleaseYear       int       `db:"release_year"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}
