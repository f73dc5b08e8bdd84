package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/BenBeattieHood/webjet-movie-comparer/internal/blob"
	httpapi "github.com/BenBeattieHood/webjet-movie-comparer/internal/http"
	"github.com/BenBeattieHood/webjet-movie-comparer/internal/store"
)

// Read-side ops API over the persisted canonical records and detail blobs.
// The ingestion pipeline never depends on this binary.
func main() {
	_ = godotenv.Load()
	ctx := context.Background()

	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatal("api: load aws cfg:", err)
	}

	app := &httpapi.App{
		Records: store.NewMovieStore(awsCfg, mustenv("MOVIE_TABLE")),
		Details: blob.NewDetailStore(awsCfg, mustenv("DETAIL_BUCKET")),
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	httpapi.RegisterRoutes(r, app)

	addr := getenv("API_ADDR", ":8080")
	log.Println("api: listening on", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func mustenv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatal("api: missing required env var ", k)
	}
	return v
}
