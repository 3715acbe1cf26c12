package migration

import (
	"context"
	"errors"
	"fmt"

	"github.com/joana-nicolaasponder/backlog-explorer-sub001/internal/models"
	"github.com/joana-nicolaasponder/backlog-explorer-sub001/internal/provider"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Reconcile maps an IGDB candidate to a local game row and returns its id.
// Lookup first: if a row for (igdb, external_id) already exists it is the
// canonical target and nothing is written. Otherwise a new row is created
// from the candidate, falling back to the legacy game's fields where the
// candidate has none, via an upsert on the (provider, external_id) unique
// index so a racing attempt for the same external id resolves harmlessly.
func (s *Service) Reconcile(ctx context.Context, candidate provider.Candidate, fallback models.Game) (uint, error) {
	var existing models.Game
	err := s.db.WithContext(ctx).
		Where("provider = ? AND external_id = ?", models.ProviderIGDB, candidate.ID).
		First(&existing).Error
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("failed to look up game by external id %s: %w", candidate.ID, err)
	}

	game := newGameFromCandidate(candidate, fallback)
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "provider"}, {Name: "external_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"title", "description", "cover_image", "rating", "release_date", "updated_at",
			}),
		}).
		Create(&game).Error
	if err != nil {
		return 0, fmt.Errorf("failed to upsert game for external id %s: %w", candidate.ID, err)
	}

	return game.ID, nil
}

// newGameFromCandidate builds the canonical row, preferring candidate fields
// and keeping the legacy row's values where the candidate is empty.
func newGameFromCandidate(candidate provider.Candidate, fallback models.Game) models.Game {
	game := models.Game{
		Provider:    models.ProviderIGDB,
		ExternalID:  candidate.ID,
		Title:       candidate.Name,
		Description: candidate.Summary,
		CoverImage:  candidate.CoverImage,
		Rating:      candidate.Rating,
		ReleaseDate: candidate.ReleaseDate,
	}
	if game.Title == "" {
		game.Title = fallback.Title
	}
	if game.Description == "" {
		game.Description = fallback.Description
	}
	if game.CoverImage == "" {
		game.CoverImage = fallback.CoverImage
	}
	if game.Rating == 0 {
		game.Rating = fallback.Rating
	}
	if game.ReleaseDate == "" {
		game.ReleaseDate = fallback.ReleaseDate
	}
	return game
}
