package ingest

import (
	"context"
	"time"

	"github.com/BenBeattieHood/webjet-movie-comparer/internal/models"
	"github.com/BenBeattieHood/webjet-movie-comparer/internal/provider"
	"github.com/BenBeattieHood/webjet-movie-comparer/internal/queue"
)

// The handlers only see these narrow views of their collaborators; the
// AWS-backed implementations live in store, blob and queue.

type RecordStore interface {
	Get(ctx context.Context, title string) (*models.Movie, error)
	Put(ctx context.Context, m models.Movie) error
	LatestPriceUpdate(ctx context.Context) (time.Time, error)
}

type BlobStore interface {
	Put(ctx context.Context, titleHash string, payload []byte) error
}

type Sender interface {
	Send(ctx context.Context, msg queue.Message) error
	SendDelayed(ctx context.Context, msg queue.Message, delay time.Duration) error
}

type Fetcher interface {
	Catalog(ctx context.Context, p provider.Provider) ([]models.MovieSummary, error)
	Detail(ctx context.Context, p provider.Provider, id string) (*models.MovieDetail, error)
}
