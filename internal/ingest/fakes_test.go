package ingest_test

import (
	"context"
	"time"

	"github.com/BenBeattieHood/webjet-movie-comparer/internal/models"
	"github.com/BenBeattieHood/webjet-movie-comparer/internal/provider"
	"github.com/BenBeattieHood/webjet-movie-comparer/internal/queue"
	"github.com/BenBeattieHood/webjet-movie-comparer/internal/store"
)

type fakeRecords struct {
	movies    map[string]models.Movie
	latest    time.Time
	conflicts int
	scanErr   error
}

func (f *fakeRecords) Get(ctx context.Context, title string) (*models.Movie, error) {
	if m, ok := f.movies[title]; ok {
		cp := m
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeRecords) Put(ctx context.Context, m models.Movie) error {
	if f.conflicts > 0 {
		f.conflicts--
		return store.ErrVersionConflict
	}
	if f.movies == nil {
		f.movies = map[string]models.Movie{}
	}
	f.movies[m.Title] = m
	return nil
}

func (f *fakeRecords) LatestPriceUpdate(ctx context.Context) (time.Time, error) {
	return f.latest, f.scanErr
}

type sent struct {
	msg   queue.Message
	delay time.Duration
}

type fakeQueue struct {
	sent    []sent
	sendErr error
}

func (f *fakeQueue) Send(ctx context.Context, msg queue.Message) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sent{msg: msg})
	return nil
}

func (f *fakeQueue) SendDelayed(ctx context.Context, msg queue.Message, delay time.Duration) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sent{msg: msg, delay: delay})
	return nil
}

type fakeBlobs struct {
	blobs  map[string][]byte
	putErr error
}

func (f *fakeBlobs) Put(ctx context.Context, titleHash string, payload []byte) error {
	if f.putErr != nil {
		return f.putErr
	}
	if f.blobs == nil {
		f.blobs = map[string][]byte{}
	}
	f.blobs[titleHash] = payload
	return nil
}

type fakeProviders struct {
	catalogs   map[provider.Provider][]models.MovieSummary
	details    map[string]*models.MovieDetail
	catalogErr error
	detailErr  error
}

func (f *fakeProviders) Catalog(ctx context.Context, p provider.Provider) ([]models.MovieSummary, error) {
	if f.catalogErr != nil {
		return nil, f.catalogErr
	}
	return f.catalogs[p], nil
}

func (f *fakeProviders) Detail(ctx context.Context, p provider.Provider, id string) (*models.MovieDetail, error) {
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	return f.details[id], nil
}

type fakeAlerts struct {
	subjects []string
	bodies   []string
	err      error
}

func (f *fakeAlerts) Alert(ctx context.Context, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.subjects = append(f.subjects, subject)
	f.bodies = append(f.bodies, body)
	return nil
}
