package ingest_test

import (
	"testing"
	"time"

	"github.com/BenBeattieHood/webjet-movie-comparer/internal/ingest"
	"github.com/BenBeattieHood/webjet-movie-comparer/internal/models"
	"github.com/BenBeattieHood/webjet-movie-comparer/internal/provider"
)

func TestTitleHashCaseInsensitive(t *testing.T) {
	want := "c8ed8ec3dc8b21290b5d28ca56344553" // md5("JAWS")

	for _, title := range []string{"Jaws", "JAWS", "jaws", "jAwS"} {
		if got := ingest.TitleHash(title); got != want {
			t.Errorf("TitleHash(%q) = %s, want %s", title, got, want)
		}
	}
}

func TestTitleHashDistinguishesDifferentText(t *testing.T) {
	if ingest.TitleHash("Jaws") == ingest.TitleHash("Jaws!") {
		t.Error("expected punctuation difference to produce a different hash")
	}
}

func TestMergeDetailNewRecord(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	detail := &models.MovieDetail{
		ID:     "cw1",
		Title:  "Jaws",
		Poster: "http://img/jaws.jpg",
		Genre:  "Thriller",
		Price:  9.99,
	}

	var m models.Movie
	ingest.MergeDetail(&m, provider.CinemaWorld, detail, now)

	if m.Title != "Jaws" {
		t.Errorf("title = %q", m.Title)
	}
	if m.TitleHash != "c8ed8ec3dc8b21290b5d28ca56344553" {
		t.Errorf("titleHash = %q", m.TitleHash)
	}
	if m.Genre != "Thriller" || m.SmallImageURL != "http://img/jaws.jpg" {
		t.Errorf("scalars not copied: %+v", m)
	}
	if len(m.Prices) != 1 {
		t.Fatalf("prices length = %d, want 1", len(m.Prices))
	}
	p := m.Prices[0]
	if p.Provider != "cinemaworld" || p.Price != 9.99 || !p.LastUpdated.Equal(now) {
		t.Errorf("price entry = %+v", p)
	}
}

func TestMergeSameProviderIdempotent(t *testing.T) {
	t0 := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)
	detail := &models.MovieDetail{ID: "cw1", Title: "Jaws", Price: 9.99}

	var m models.Movie
	ingest.MergeDetail(&m, provider.CinemaWorld, detail, t0)
	ingest.MergeDetail(&m, provider.CinemaWorld, detail, t1)

	if len(m.Prices) != 1 {
		t.Fatalf("prices length = %d, want 1", len(m.Prices))
	}
	if m.Prices[0].Price != 9.99 {
		t.Errorf("price = %v", m.Prices[0].Price)
	}
	if !m.Prices[0].LastUpdated.Equal(t1) {
		t.Errorf("lastUpdated = %v, want %v", m.Prices[0].LastUpdated, t1)
	}
}

func TestMergePriceMatchesProviderCaseInsensitively(t *testing.T) {
	now := time.Now().UTC()
	m := models.Movie{
		Title: "Jaws",
		Prices: []models.ProviderPrice{
			{Provider: "CinemaWorld", Price: 12.50, LastUpdated: now.Add(-time.Hour)},
		},
	}

	ingest.MergeDetail(&m, provider.CinemaWorld, &models.MovieDetail{Title: "Jaws", Price: 9.99}, now)

	if len(m.Prices) != 1 {
		t.Fatalf("prices length = %d, want 1", len(m.Prices))
	}
	if m.Prices[0].Price != 9.99 {
		t.Errorf("price = %v, want overwrite to 9.99", m.Prices[0].Price)
	}
}

func TestMergeTwoProviders(t *testing.T) {
	now := time.Now().UTC()

	var m models.Movie
	ingest.MergeDetail(&m, provider.CinemaWorld, &models.MovieDetail{Title: "Jaws", Price: 9.99}, now)
	ingest.MergeDetail(&m, provider.FilmWorld, &models.MovieDetail{Title: "Jaws", Price: 7.49}, now)

	if len(m.Prices) != 2 {
		t.Fatalf("prices length = %d, want 2", len(m.Prices))
	}

	byProvider := map[string]float64{}
	for _, p := range m.Prices {
		byProvider[p.Provider] = p.Price
	}
	if byProvider["cinemaworld"] != 9.99 || byProvider["filmworld"] != 7.49 {
		t.Errorf("prices = %v", byProvider)
	}
}

func TestMergeNeverClearsScalars(t *testing.T) {
	now := time.Now().UTC()
	m := models.Movie{
		Title:     "Jaws",
		Genre:     "Thriller",
		Rating:    "8.1",
		Released:  "1975",
		Metascore: "87",
	}

	// Second provider knows the price but none of the metadata.
	ingest.MergeDetail(&m, provider.FilmWorld, &models.MovieDetail{Title: "Jaws", Price: 7.49}, now)

	if m.Genre != "Thriller" || m.Rating != "8.1" || m.Released != "1975" || m.Metascore != "87" {
		t.Errorf("scalars were clobbered: %+v", m)
	}
}
