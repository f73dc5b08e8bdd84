package httpapi

import "github.com/go-chi/chi/v5"

func RegisterRoutes(r chi.Router, app *App) {
	r.Get("/healthz", healthHandler)
	r.Get("/movies", app.listMoviesHandler)
	r.Get("/movies/{titleHash}", app.movieDetailHandler)
}
