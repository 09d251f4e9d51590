package wire

import (
	"cinema-reservation/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMovie(r chi.Router, movieHandler *adaptor.MovieHandler) {
	// GET /api/movies - list the catalog
	r.Get("/api/movies", movieHandler.ListMovies)

	// GET /api/movies/{title} - look up reference data by title
	r.Get("/api/movies/{title}", movieHandler.GetMovieByTitle)

	// POST /api/admin/movies - admin catalog maintenance
	r.Post("/api/admin/movies", movieHandler.CreateMovie)
}
