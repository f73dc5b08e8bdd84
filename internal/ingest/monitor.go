package ingest

import (
	"context"
	"log"
	"time"

	"github.com/BenBeattieHood/webjet-movie-comparer/internal/provider"
	"github.com/BenBeattieHood/webjet-movie-comparer/internal/queue"
)

// DefaultStaleAfter is the freshness window: if the newest price update
// anywhere in the store is at least this old, a full re-ingestion sweep is
// triggered.
const DefaultStaleAfter = 24 * time.Hour

// Monitor runs the scheduled staleness check. Safe to run repeatedly: a
// fresh store produces no messages at all.
type Monitor struct {
	Records    RecordStore
	Queue      Sender
	StaleAfter time.Duration

	Now func() time.Time
}

// Run scans the store for the newest price update and, when it is absent or
// stale, emits one query-all message per provider.
func (m *Monitor) Run(ctx context.Context) error {
	latest, err := m.Records.LatestPriceUpdate(ctx)
	if err != nil {
		return err
	}

	staleAfter := m.StaleAfter
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}

	if !latest.IsZero() && m.now().Sub(latest) < staleAfter {
		log.Println("monitor: catalog fresh", "lastUpdated=", latest.Format(time.RFC3339))
		return nil
	}

	for _, p := range provider.All {
		if err := m.Queue.Send(ctx, queue.QueryAll(p.String())); err != nil {
			return err
		}
		log.Println("monitor: queued sweep", "provider=", p)
	}
	return nil
}

func (m *Monitor) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now().UTC()
}
