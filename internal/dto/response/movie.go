package response

import "cinema-reservation/internal/data/entity"

type MovieResponse struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	Genre             string  `json:"genre"`
	DurationInMinutes int     `json:"duration_in_minutes"`
	Rating            float64 `json:"rating"`
	ReleaseYear       int     `json:"release_year"`
}

func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:                movie.ID.String(),
		Title:             movie.Title,
		Genre:             movie.Genre,
		DurationInMinutes: movie.DurationInMinutes,
		Rating:            movie.Rating,
		ReleaseYear:       movie.ReleaseYear,
	}
}
