package request

type CreateMovieRequest struct {
	Title             string  `json:"title" validate:"required"`
	Genre             string  `json:"genre" validate:"required"`
	DurationInMinutes int     `json:"duration_in_minutes" validate:"required,gt=0"`
	Rating            float64 `json:"rating" validate:"gte=0,lte=10"`
	ReleaseYear       int     `json:"release_year" validate:"required,gte=1888"`
}
