package handler

import (
	"net/http"

	"github.com/joana-nicolaasponder/backlog-explorer-sub001/internal/logger"
	"github.com/joana-nicolaasponder/backlog-explorer-sub001/internal/models"
	"github.com/joana-nicolaasponder/backlog-explorer-sub001/internal/provider"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// region --- DTOs ---

// GameResponse defines the structure for a game with its taxonomy.
type GameResponse struct {
	ID          uint     `json:"id"`
	Provider    string   `json:"provider"`
	ExternalID  string   `json:"external_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	CoverImage  string   `json:"cover_image"`
	Rating      float64  `json:"rating"`
	ReleaseDate string   `json:"release_date"`
	Genres      []string `json:"genres"`
	Platforms   []string `json:"platforms"`
}

func newGameResponse(game models.Game) GameResponse {
	resp := GameResponse{
		ID:          game.ID,
		Provider:    string(game.Provider),
		ExternalID:  game.ExternalID,
		Title:       game.Title,
		Description: game.Description,
		CoverImage:  game.CoverImage,
		Rating:      game.Rating,
		ReleaseDate: game.ReleaseDate,
	}
	for _, genre := range game.Genres {
		if genre != nil {
			resp.Genres = append(resp.Genres, genre.Name)
		}
	}
	for _, platform := range game.Platforms {
		if platform != nil {
			resp.Platforms = append(resp.Platforms, platform.Name)
		}
	}
	return resp
}

// CandidateResponse is one provider search result, echoed back to the
// add-flow UI in the shape AddLibraryEntry accepts.
type CandidateResponse struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Summary     string                 `json:"summary,omitempty"`
	CoverImage  string                 `json:"cover_image,omitempty"`
	Rating      float64                `json:"rating,omitempty"`
	ReleaseDate string                 `json:"release_date,omitempty"`
	Genres      []provider.GenreRef    `json:"genres,omitempty"`
	Platforms   []provider.PlatformRef `json:"platforms,omitempty"`
}

func newCandidateResponse(c provider.Candidate) CandidateResponse {
	return CandidateResponse{
		ID:          c.ID,
		Name:        c.Name,
		Summary:     c.Summary,
		CoverImage:  c.CoverImage,
		Rating:      c.Rating,
		ReleaseDate: c.ReleaseDate,
		Genres:      c.Genres,
		Platforms:   c.Platforms,
	}
}

// toCandidate converts the DTO back into a provider candidate.
func (r CandidateResponse) toCandidate() provider.Candidate {
	return provider.Candidate{
		ID:          r.ID,
		Name:        r.Name,
		Summary:     r.Summary,
		CoverImage:  r.CoverImage,
		Rating:      r.Rating,
		ReleaseDate: r.ReleaseDate,
		Genres:      r.Genres,
		Platforms:   r.Platforms,
	}
}

// endregion

// SearchGames godoc
// @Summary      Search a metadata provider
// @Description  Passes a title search through to IGDB (default) or RAWG for the add-flow UI.
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Param        q        query string true  "Title to search for"
// @Param        provider query string false "Provider to search (igdb or rawg)" default(igdb)
// @Success      200  {array}   CandidateResponse
// @Failure      400  {object}  ErrorResponse "Missing query or unknown provider"
// @Failure      502  {object}  ErrorResponse "Provider unavailable"
// @Router       /games/search [get]
func SearchGames(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'q' is required"})
		return
	}

	client := search
	switch c.DefaultQuery("provider", string(models.ProviderIGDB)) {
	case string(models.ProviderIGDB):
	case string(models.ProviderRAWG):
		client = legacy
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown provider"})
		return
	}

	candidates, err := client.Search(c.Request.Context(), query)
	if err != nil {
		logger.WithRequestID(log, c).Error("provider search failed", zap.String("query", query), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Metadata provider is unavailable"})
		return
	}

	response := make([]CandidateResponse, 0, len(candidates))
	for _, candidate := range candidates {
		response = append(response, newCandidateResponse(candidate))
	}
	c.JSON(http.StatusOK, response)
}
