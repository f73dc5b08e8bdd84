package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/BenBeattieHood/webjet-movie-comparer/internal/alert"
	"github.com/BenBeattieHood/webjet-movie-comparer/internal/blob"
	"github.com/BenBeattieHood/webjet-movie-comparer/internal/ingest"
	"github.com/BenBeattieHood/webjet-movie-comparer/internal/provider"
	"github.com/BenBeattieHood/webjet-movie-comparer/internal/queue"
	"github.com/BenBeattieHood/webjet-movie-comparer/internal/secrets"
	"github.com/BenBeattieHood/webjet-movie-comparer/internal/store"
)

func main() {
	_ = godotenv.Load()
	ctx := context.Background()

	workerID := getenv("WORKER_ID", "worker-"+uuid.NewString()[:8])

	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatal("worker: load aws cfg:", err)
	}

	queueURL := mustenv("QUEUE_URL")
	tableName := mustenv("MOVIE_TABLE")
	bucket := mustenv("DETAIL_BUCKET")
	baseURL := getenv("PROVIDER_BASE_URL", "https://webjetapitest.azurewebsites.net/api")

	apiKey, err := secrets.APIKey(ctx, awsCfg, mustenv("API_KEY_SECRET_NAME"))
	if err != nil {
		log.Fatal("worker: load api key:", err)
	}

	q := queue.NewSQS(awsCfg, queueURL)
	records := store.NewMovieStore(awsCfg, tableName)
	details := blob.NewDetailStore(awsCfg, bucket)
	providers := provider.NewClient(baseURL, apiKey)

	ingestor := &ingest.Ingestor{Providers: providers, Records: records, Details: details}
	fanout := &ingest.FanOut{Providers: providers, Queue: q}
	escalator := &ingest.Escalator{
		Queue:   q,
		Alerts:  newAlerter(awsCfg),
		Limiter: alert.NewLimiter(alertWindow()),
	}

	log.Println("worker: started",
		"workerID=", workerID,
		"queue=", queueURL,
		"table=", tableName,
		"bucket=", bucket,
	)

	for {
		// Receive one batch and work through it sequentially; concurrency
		// comes from running more worker processes, not from fan-out here.
		batch, err := q.Receive(ctx, 10)
		if err != nil {
			log.Println("worker: receive error:", err)
			time.Sleep(500 * time.Millisecond)
			continue
		}

		for _, rm := range batch {
			processOne(ctx, q, rm, ingestor, fanout, escalator)
		}
	}
}

func processOne(
	ctx context.Context,
	q *queue.SQS,
	rm queue.Received,
	ingestor *ingest.Ingestor,
	fanout *ingest.FanOut,
	escalator *ingest.Escalator,
) {
	var msg queue.Message
	if err := json.Unmarshal([]byte(rm.Body), &msg); err != nil {
		// Poison body: there is no retry counter to thread, so alert and
		// drop instead of redelivering forever.
		escalator.Escalate(ctx, nil, fmt.Errorf("decode message: %w", err))
		deleteMessage(ctx, q, rm)
		return
	}

	var err error
	switch msg.Type {
	case queue.TypeQueryAll:
		err = fanout.Handle(ctx, msg)
	case queue.TypeQuerySingle:
		err = ingestor.Handle(ctx, msg)
	default:
		err = fmt.Errorf("unknown message type %q", msg.Type)
	}

	if err != nil {
		if !escalator.Escalate(ctx, &msg, err) {
			// Requeue failed: keep the original message; the visibility
			// timeout will redeliver it.
			return
		}
	}

	deleteMessage(ctx, q, rm)
}

func deleteMessage(ctx context.Context, q *queue.SQS, rm queue.Received) {
	if err := q.Delete(ctx, rm.ReceiptHandle); err != nil {
		// Not fatal; the message will reappear and the idempotent merge
		// absorbs the duplicate.
		log.Println("worker: delete error:", err)
	}
}

func newAlerter(cfg aws.Config) alert.Alerter {
	from := os.Getenv("ALERT_FROM_EMAIL")
	to := splitCSV(os.Getenv("ALERT_TO_EMAIL"))
	if from == "" || len(to) == 0 {
		log.Println("worker: alert emails not configured, alerts disabled")
		return alert.Noop{}
	}

	a, err := alert.NewSESAlerter(cfg, from, to)
	if err != nil {
		log.Fatal("worker: init alerter:", err)
	}
	return a
}

func alertWindow() time.Duration {
	d, err := time.ParseDuration(getenv("ALERT_WINDOW", "5m"))
	if err != nil {
		log.Fatal("worker: bad ALERT_WINDOW:", err)
	}
	return d
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
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
		log.Fatal("worker: missing required env var ", k)
	}
	return v
}
