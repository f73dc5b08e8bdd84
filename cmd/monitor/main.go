package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/joho/godotenv"

	"github.com/BenBeattieHood/webjet-movie-comparer/internal/ingest"
	"github.com/BenBeattieHood/webjet-movie-comparer/internal/queue"
	"github.com/BenBeattieHood/webjet-movie-comparer/internal/store"
)

// The staleness monitor. By default it sweeps once per day in-process; with
// RUN_ONCE set it performs a single sweep and exits, for cron or a
// scheduled-task platform.
func main() {
	_ = godotenv.Load()
	ctx := context.Background()

	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatal("monitor: load aws cfg:", err)
	}

	q := queue.NewSQS(awsCfg, mustenv("QUEUE_URL"))
	records := store.NewMovieStore(awsCfg, mustenv("MOVIE_TABLE"))

	mon := &ingest.Monitor{
		Records:    records,
		Queue:      q,
		StaleAfter: duration("STALE_AFTER", ingest.DefaultStaleAfter),
	}

	if os.Getenv("RUN_ONCE") != "" {
		if err := mon.Run(ctx); err != nil {
			log.Fatal("monitor: sweep:", err)
		}
		return
	}

	interval := duration("MONITOR_INTERVAL", 24*time.Hour)
	log.Println("monitor: started", "interval=", interval)

	for {
		// A failed sweep is not retried; the next tick covers it.
		if err := mon.Run(ctx); err != nil {
			log.Println("monitor: sweep error:", err)
		}
		time.Sleep(interval)
	}
}

func duration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatal("monitor: bad ", k, ": ", err)
	}
	return d
}

func mustenv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatal("monitor: missing required env var ", k)
	}
	return v
}
