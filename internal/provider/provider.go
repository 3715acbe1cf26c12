// Package provider defines a uniform interface over the external
// game-metadata sources (RAWG, IGDB) and thin HTTP adapters for each.
package provider

import "context"

// GenreRef is a genre name as reported by a provider.
type GenreRef struct {
	Name string `json:"name"`
}

// PlatformRef is a platform name as reported by a provider.
type PlatformRef struct {
	Name string `json:"name"`
}

// Candidate is one search result from a metadata provider. Optional fields
// are zero-valued when the provider omits them.
type Candidate struct {
	ID          string
	Name        string
	Summary     string
	CoverImage  string
	Rating      float64
	ReleaseDate string
	Genres      []GenreRef
	Platforms   []PlatformRef
}

// Client is the interface all metadata providers implement. Search returns
// a bounded result set in provider-relevance order; that order is preserved
// downstream, never re-ranked locally.
type Client interface {
	// Search looks up games by title.
	Search(ctx context.Context, title string) ([]Candidate, error)

	// Name returns the provider's name (e.g. "IGDB").
	Name() string
}
