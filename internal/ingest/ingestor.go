package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/BenBeattieHood/webjet-movie-comparer/internal/models"
	"github.com/BenBeattieHood/webjet-movie-comparer/internal/provider"
	"github.com/BenBeattieHood/webjet-movie-comparer/internal/queue"
	"github.com/BenBeattieHood/webjet-movie-comparer/internal/store"
)

// putAttempts bounds the optimistic-concurrency loop. Conflicts only happen
// when another worker updates the same title at the same moment, so one or
// two retries is normally enough.
const putAttempts = 3

// Ingestor handles query-single messages: fetch one item's detail, merge it
// into the canonical record, and overwrite the detail blob.
type Ingestor struct {
	Providers Fetcher
	Records   RecordStore
	Details   BlobStore

	Now func() time.Time
}

func (in *Ingestor) Handle(ctx context.Context, msg queue.Message) error {
	p, err := provider.Parse(msg.Provider)
	if err != nil {
		return err
	}
	if msg.ID == "" {
		return errors.New("query-single message has no id")
	}

	detail, err := in.Providers.Detail(ctx, p, msg.ID)
	if err != nil {
		return err
	}
	if detail.Title == "" {
		return fmt.Errorf("movie %s from %s has no title", msg.ID, p)
	}

	now := in.now()

	// Re-processing the same message converges: the provider's price entry
	// is overwritten in place, never duplicated.
	for attempt := 0; attempt < putAttempts; attempt++ {
		current, err := in.Records.Get(ctx, detail.Title)
		if err != nil {
			return err
		}

		var m models.Movie
		if current != nil {
			m = *current
		}
		MergeDetail(&m, p, detail, now)

		if err := in.Records.Put(ctx, m); err != nil {
			if errors.Is(err, store.ErrVersionConflict) {
				continue
			}
			return err
		}

		payload, err := json.Marshal(detail)
		if err != nil {
			return err
		}
		return in.Details.Put(ctx, m.TitleHash, payload)
	}

	return fmt.Errorf("update %q after %d attempts: %w", detail.Title, putAttempts, store.ErrVersionConflict)
}

func (in *Ingestor) now() time.Time {
	if in.Now != nil {
		return in.Now()
	}
	return time.Now().UTC()
}
