package models

import "time"

// Movie is the canonical per-title record merged across providers.
// It is keyed by title in DynamoDB; TitleHash is the cross-provider
// identity used as the detail blob key.
type Movie struct {
	Title         string `dynamodbav:"title" json:"title"`
	TitleHash     string `dynamodbav:"titleHash" json:"titleHash"`
	SmallImageURL string `dynamodbav:"smallImageUrl" json:"smallImageUrl"`

	Genre     string `dynamodbav:"genre" json:"genre"`
	Rating    string `dynamodbav:"rating" json:"rating"`
	Released  string `dynamodbav:"released" json:"released"`
	Metascore string `dynamodbav:"metascore" json:"metascore"`

	// At most one entry per provider, matched case-insensitively.
	Prices []ProviderPrice `dynamodbav:"prices" json:"prices"`

	// Bumped on every write; Put conditions on the stored value.
	Version int64 `dynamodbav:"version" json:"version"`
}

type ProviderPrice struct {
	Provider    string    `dynamodbav:"provider" json:"provider"`
	Price       float64   `dynamodbav:"price" json:"price"`
	LastUpdated time.Time `dynamodbav:"lastUpdated" json:"lastUpdated"`
}

// MovieSummary is one entry in a provider's catalog listing.
type MovieSummary struct {
	ID     string `json:"ID"`
	Title  string `json:"Title"`
	Poster string `json:"Poster"`
}

// MovieDetail is the full provider payload for one item. It is persisted
// verbatim as the detail blob.
type MovieDetail struct {
	ID        string  `json:"ID"`
	Title     string  `json:"Title"`
	Poster    string  `json:"Poster"`
	Price     float64 `json:"Price"`
	Year      string  `json:"Year"`
	Rated     string  `json:"Rated"`
	Released  string  `json:"Released"`
	Runtime   string  `json:"Runtime"`
	Genre     string  `json:"Genre"`
	Director  string  `json:"Director"`
	Writer    string  `json:"Writer"`
	Actors    string  `json:"Actors"`
	Plot      string  `json:"Plot"`
	Language  string  `json:"Language"`
	Country   string  `json:"Country"`
	Metascore string  `json:"Metascore"`
	Rating    string  `json:"Rating"`
	Votes     string  `json:"Votes"`
	ImageURL  string  `json:"ImageUrl"`
}

// Response envelopes used by the provider endpoints.
type MovieListResponse struct {
	Movies []MovieSummary `json:"Movies"`
}

type MovieDetailResponse struct {
	Movie *MovieDetail `json:"Movie"`
}
