package migration

import (
	"context"
	"errors"
	"fmt"

	"github.com/joana-nicolaasponder/backlog-explorer-sub001/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// migrateOwnership re-points every user's library entry from the legacy game
// row to the canonical one. A shared legacy game may be owned by many users;
// each user's update is independent, so one failing user is logged and
// skipped rather than aborting the rest. No transaction spans the batch.
func (s *Service) migrateOwnership(ctx context.Context, oldGameID, newGameID uint) error {
	var entries []models.LibraryEntry
	if err := s.db.WithContext(ctx).Where("game_id = ?", oldGameID).Find(&entries).Error; err != nil {
		return fmt.Errorf("failed to fetch library entries for game %d: %w", oldGameID, err)
	}

	for _, entry := range entries {
		if err := s.migrateEntry(ctx, entry, newGameID); err != nil {
			s.log.Warn("failed to migrate library entry",
				zap.Uint("user_id", entry.UserID),
				zap.Uint("entry_id", entry.ID),
				zap.Error(err))
		}
	}
	return nil
}

// migrateEntry moves one user's entry. If the user already owns the
// canonical game the existing entry wins and the legacy one is removed;
// its status and progress are not merged. Otherwise the entry's game_id is
// updated in place, keeping status, progress, platforms and custom image.
// Removal is unscoped: a soft-deleted row would keep holding the
// (user_id, game_id) unique slot and block a later re-add or re-point.
func (s *Service) migrateEntry(ctx context.Context, entry models.LibraryEntry, newGameID uint) error {
	var existing models.LibraryEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND game_id = ?", entry.UserID, newGameID).
		First(&existing).Error

	switch {
	case err == nil:
		// Collision: the user already owns the canonical game.
		if err := s.db.WithContext(ctx).Unscoped().Delete(&models.LibraryEntry{}, entry.ID).Error; err != nil {
			return fmt.Errorf("failed to delete superseded entry %d: %w", entry.ID, err)
		}
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := s.db.WithContext(ctx).Model(&models.LibraryEntry{}).
			Where("id = ?", entry.ID).
			Update("game_id", newGameID).Error; err != nil {
			return fmt.Errorf("failed to re-point entry %d: %w", entry.ID, err)
		}
		return nil
	default:
		return fmt.Errorf("failed to check for existing entry: %w", err)
	}
}
