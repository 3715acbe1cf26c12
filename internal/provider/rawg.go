// RAWG implementation of [Client].
//
// The legacy provider. Kept read-capable so historical rows can still be
// displayed and searched, but no new library entries are sourced from it.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

const rawgBaseURL = "https://api.rawg.io/api"

type rawgNamed struct {
	Name string `json:"name"`
}

type rawgPlatformWrapper struct {
	Platform rawgNamed `json:"platform"`
}

// rawgGame represents one game record from the RAWG /games endpoint.
type rawgGame struct {
	ID              int64                 `json:"id"`
	Name            string                `json:"name"`
	BackgroundImage string                `json:"background_image"`
	Rating          float64               `json:"rating"`
	Released        string                `json:"released"`
	Genres          []rawgNamed           `json:"genres"`
	Platforms       []rawgPlatformWrapper `json:"platforms"`
}

type rawgSearchResponse struct {
	Results []rawgGame `json:"results"`
}

// RAWGClient talks to the RAWG API.
type RAWGClient struct {
	apiKey  string
	baseURL string
	limit   int
	http    *http.Client
}

// NewRAWGClient creates a RAWG client. limit bounds search result sets.
func NewRAWGClient(apiKey string, limit int) *RAWGClient {
	if limit <= 0 {
		limit = 10
	}
	return &RAWGClient{
		apiKey:  apiKey,
		baseURL: rawgBaseURL,
		limit:   limit,
		http:    &http.Client{},
	}
}

// Name returns the provider's name.
func (c *RAWGClient) Name() string { return "RAWG" }

// Search looks up games by title, in RAWG relevance order.
func (c *RAWGClient) Search(ctx context.Context, title string) ([]Candidate, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("search", title)
	params.Set("page_size", strconv.Itoa(c.limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/games?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build RAWG request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("RAWG search failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("RAWG search returned status %d", resp.StatusCode)
	}

	var payload rawgSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode RAWG response: %w", err)
	}

	candidates := make([]Candidate, 0, len(payload.Results))
	for _, g := range payload.Results {
		candidate := Candidate{
			ID:          strconv.FormatInt(g.ID, 10),
			Name:        g.Name,
			CoverImage:  g.BackgroundImage,
			Rating:      g.Rating,
			ReleaseDate: g.Released,
		}
		for _, genre := range g.Genres {
			candidate.Genres = append(candidate.Genres, GenreRef{Name: genre.Name})
		}
		for _, p := range g.Platforms {
			candidate.Platforms = append(candidate.Platforms, PlatformRef{Name: p.Platform.Name})
		}
		candidates = append(candidates, candidate)
	}
	return candidates, nil
}
