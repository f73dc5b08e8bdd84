package ingest

import (
	"context"

	"github.com/BenBeattieHood/webjet-movie-comparer/internal/provider"
	"github.com/BenBeattieHood/webjet-movie-comparer/internal/queue"
)

// FanOut handles query-all messages: it expands one provider's catalog
// listing into one query-single message per item. There is no dedup against
// in-flight or already-ingested items; the ingestor's merge is idempotent,
// so duplicates are wasted work rather than corruption.
type FanOut struct {
	Providers Fetcher
	Queue     Sender
}

func (f *FanOut) Handle(ctx context.Context, msg queue.Message) error {
	p, err := provider.Parse(msg.Provider)
	if err != nil {
		return err
	}

	movies, err := f.Providers.Catalog(ctx, p)
	if err != nil {
		return err
	}

	for _, m := range movies {
		if err := f.Queue.Send(ctx, queue.QuerySingle(p.String(), m.ID)); err != nil {
			return err
		}
	}
	return nil
}
