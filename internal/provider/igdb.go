// IGDB implementation of [Client].
//
// Uses the v4 endpoint with Apicalypse query bodies, see
// https://api-docs.igdb.com/#games
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const igdbBaseURL = "https://api.igdb.com/v4"

type igdbCover struct {
	URL string `json:"url"`
}

type igdbNamed struct {
	Name string `json:"name"`
}

// igdbGame represents one game record from the IGDB /games endpoint.
type igdbGame struct {
	ID               int64       `json:"id"`
	Name             string      `json:"name"`
	Summary          string      `json:"summary"`
	Rating           float64     `json:"rating"`
	FirstReleaseDate int64       `json:"first_release_date"`
	Cover            igdbCover   `json:"cover"`
	Genres           []igdbNamed `json:"genres"`
	Platforms        []igdbNamed `json:"platforms"`
}

// IGDBClient talks to the IGDB v4 API.
type IGDBClient struct {
	clientID string
	token    string
	baseURL  string
	limit    int
	http     *http.Client
}

// NewIGDBClient creates an IGDB client. limit bounds search result sets.
func NewIGDBClient(clientID, token string, limit int) *IGDBClient {
	if limit <= 0 {
		limit = 10
	}
	return &IGDBClient{
		clientID: clientID,
		token:    token,
		baseURL:  igdbBaseURL,
		limit:    limit,
		http:     &http.Client{},
	}
}

// Name returns the provider's name.
func (c *IGDBClient) Name() string { return "IGDB" }

// Search looks up games by title, in IGDB relevance order.
func (c *IGDBClient) Search(ctx context.Context, title string) ([]Candidate, error) {
	query := fmt.Sprintf(
		`search "%s"; fields name,summary,rating,first_release_date,cover.url,genres.name,platforms.name; limit %d;`,
		strings.ReplaceAll(title, `"`, `\"`), c.limit,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/games", bytes.NewBufferString(query))
	if err != nil {
		return nil, fmt.Errorf("failed to build IGDB request: %w", err)
	}
	req.Header.Set("Client-ID", c.clientID)
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("IGDB search failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("IGDB search returned status %d", resp.StatusCode)
	}

	var games []igdbGame
	if err := json.NewDecoder(resp.Body).Decode(&games); err != nil {
		return nil, fmt.Errorf("failed to decode IGDB response: %w", err)
	}

	candidates := make([]Candidate, 0, len(games))
	for _, g := range games {
		candidates = append(candidates, g.toCandidate())
	}
	return candidates, nil
}

func (g igdbGame) toCandidate() Candidate {
	c := Candidate{
		ID:         fmt.Sprintf("%d", g.ID),
		Name:       g.Name,
		Summary:    g.Summary,
		Rating:     g.Rating,
		CoverImage: g.Cover.URL,
	}
	if g.FirstReleaseDate > 0 {
		c.ReleaseDate = time.Unix(g.FirstReleaseDate, 0).UTC().Format("2006-01-02")
	}
	for _, genre := range g.Genres {
		c.Genres = append(c.Genres, GenreRef{Name: genre.Name})
	}
	for _, platform := range g.Platforms {
		c.Platforms = append(c.Platforms, PlatformRef{Name: platform.Name})
	}
	return c
}
