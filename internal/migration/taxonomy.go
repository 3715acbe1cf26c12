package migration

import (
	"context"
	"fmt"

	"github.com/joana-nicolaasponder/backlog-explorer-sub001/internal/models"

	"gorm.io/gorm/clause"
)

// MergeGenres copies external genre names onto a game. Tag rows are upserted
// by unique name, then only the missing (game, genre) links are inserted.
// Merging is additive: a tag a game already carries is never removed, even
// when the provider does not list it.
func (s *Service) MergeGenres(ctx context.Context, names []string, gameID uint) error {
	names = dedupeNames(names)
	if len(names) == 0 {
		return nil
	}

	genres := make([]models.Genre, 0, len(names))
	for _, name := range names {
		genres = append(genres, models.Genre{Name: name})
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&genres).Error
	if err != nil {
		return fmt.Errorf("failed to upsert genres: %w", err)
	}

	// Re-fetch: ids of rows that hit the conflict path are not populated.
	var stored []models.Genre
	if err := s.db.WithContext(ctx).Where("name IN ?", names).Find(&stored).Error; err != nil {
		return fmt.Errorf("failed to fetch genre ids: %w", err)
	}

	var existing []models.GameGenre
	if err := s.db.WithContext(ctx).Where("game_id = ?", gameID).Find(&existing).Error; err != nil {
		return fmt.Errorf("failed to fetch genre links for game %d: %w", gameID, err)
	}
	linked := make(map[uint]bool, len(existing))
	for _, link := range existing {
		linked[link.GenreID] = true
	}

	var missing []models.GameGenre
	for _, genre := range stored {
		if !linked[genre.ID] {
			missing = append(missing, models.GameGenre{GameID: gameID, GenreID: genre.ID})
		}
	}
	if len(missing) == 0 {
		return nil
	}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&missing).Error
	if err != nil {
		return fmt.Errorf("failed to link genres to game %d: %w", gameID, err)
	}
	return nil
}

// MergePlatforms is the platform analogue of MergeGenres, exercised by the
// richer add-flow and by migration when the candidate carries platforms.
func (s *Service) MergePlatforms(ctx context.Context, names []string, gameID uint) error {
	names = dedupeNames(names)
	if len(names) == 0 {
		return nil
	}

	platforms := make([]models.Platform, 0, len(names))
	for _, name := range names {
		platforms = append(platforms, models.Platform{Name: name})
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&platforms).Error
	if err != nil {
		return fmt.Errorf("failed to upsert platforms: %w", err)
	}

	var stored []models.Platform
	if err := s.db.WithContext(ctx).Where("name IN ?", names).Find(&stored).Error; err != nil {
		return fmt.Errorf("failed to fetch platform ids: %w", err)
	}

	var existing []models.GamePlatform
	if err := s.db.WithContext(ctx).Where("game_id = ?", gameID).Find(&existing).Error; err != nil {
		return fmt.Errorf("failed to fetch platform links for game %d: %w", gameID, err)
	}
	linked := make(map[uint]bool, len(existing))
	for _, link := range existing {
		linked[link.PlatformID] = true
	}

	var missing []models.GamePlatform
	for _, platform := range stored {
		if !linked[platform.ID] {
			missing = append(missing, models.GamePlatform{GameID: gameID, PlatformID: platform.ID})
		}
	}
	if len(missing) == 0 {
		return nil
	}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&missing).Error
	if err != nil {
		return fmt.Errorf("failed to link platforms to game %d: %w", gameID, err)
	}
	return nil
}

// dedupeNames drops empty and repeated names, preserving order.
func dedupeNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := names[:0:0]
	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
