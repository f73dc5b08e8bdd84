package ingest

import (
	"strings"
	"time"

	"github.com/BenBeattieHood/webjet-movie-comparer/internal/models"
	"github.com/BenBeattieHood/webjet-movie-comparer/internal/provider"
)

// MergeDetail folds one provider's payload into the canonical record.
// Scalar fields only move forward: an empty incoming value never clobbers
// data the other provider already supplied. The price entry for the
// provider is overwritten in place, or appended on first sight.
func MergeDetail(m *models.Movie, p provider.Provider, d *models.MovieDetail, now time.Time) {
	m.Title = d.Title
	m.TitleHash = TitleHash(d.Title)

	setIfPresent(&m.SmallImageURL, d.Poster)
	setIfPresent(&m.Genre, d.Genre)
	setIfPresent(&m.Rating, d.Rating)
	setIfPresent(&m.Released, d.Released)
	setIfPresent(&m.Metascore, d.Metascore)

	mergePrice(m, p.String(), d.Price, now)
}

func setIfPresent(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func mergePrice(m *models.Movie, providerName string, price float64, now time.Time) {
	for i := range m.Prices {
		if strings.EqualFold(m.Prices[i].Provider, providerName) {
			m.Prices[i].Price = price
			m.Prices[i].LastUpdated = now
			return
		}
	}
	m.Prices = append(m.Prices, models.ProviderPrice{
		Provider:    providerName,
		Price:       price,
		LastUpdated: now,
	})
}
