package httpapi

import (
	"github.com/BenBeattieHood/webjet-movie-comparer/internal/blob"
	"github.com/BenBeattieHood/webjet-movie-comparer/internal/store"
)

type App struct {
	Records *store.MovieStore
	Details *blob.DetailStore
}
