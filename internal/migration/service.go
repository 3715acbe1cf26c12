// Package migration implements the RAWG → IGDB reconciliation pipeline:
// resolve a legacy game against the current provider, reconcile the
// canonical local row, re-point library entries, and merge taxonomy tags.
package migration

import (
	"context"
	"fmt"

	"github.com/joana-nicolaasponder/backlog-explorer-sub001/internal/models"
	"github.com/joana-nicolaasponder/backlog-explorer-sub001/internal/provider"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service runs migration attempts. One attempt is a sequential chain of
// provider and storage round-trips; safety under concurrent attempts for the
// same external game comes from the storage unique constraints, not from
// locking here.
type Service struct {
	db   *gorm.DB
	igdb provider.Client
	log  *zap.Logger
	opts MatchOptions
}

// NewService creates a migration service.
func NewService(db *gorm.DB, igdb provider.Client, log *zap.Logger, opts MatchOptions) *Service {
	if opts.MinExactLength <= 0 {
		opts = DefaultMatchOptions()
	}
	return &Service{
		db:   db,
		igdb: igdb,
		log:  log,
		opts: opts,
	}
}

// Outcome reports the result of one migration attempt. Game is nil on
// no-match; Stage records how far the attempt got, which callers can use to
// resume or report.
type Outcome struct {
	Stage Stage
	Game  *models.Game
}

// MigrateToIGDB is the sole entry point for migrating a legacy game. It
// returns the canonical IGDB-backed game on success and a nil Game on
// no-match; only infrastructure errors come back as a non-nil error, in
// which case the legacy row remains authoritative and untouched by any
// stage that did not complete.
func (s *Service) MigrateToIGDB(ctx context.Context, game models.Game) (*Outcome, error) {
	out := &Outcome{Stage: StageLegacy}

	if game.Provider == models.ProviderIGDB {
		// Already canonical; a prior attempt finished the job.
		out.Stage = StageTagged
		out.Game = &game
		return out, nil
	}

	log := s.log.With(zap.String("title", game.Title), zap.Uint("game_id", game.ID))

	out.Stage = StageResolving
	candidate, err := s.resolve(ctx, game.Title)
	if err != nil {
		log.Error("migration failed", zap.String("stage", out.Stage.String()), zap.Error(err))
		return out, err
	}
	if candidate == nil {
		out.Stage = StageNoMatch
		log.Info("no IGDB match, keeping legacy record")
		return out, nil
	}
	out.Stage = StageResolved

	newID, err := s.Reconcile(ctx, *candidate, game)
	if err != nil {
		log.Error("migration failed", zap.String("stage", out.Stage.String()), zap.Error(err))
		return out, err
	}
	out.Stage = StageReconciled

	if err := s.migrateOwnership(ctx, game.ID, newID); err != nil {
		log.Error("migration failed", zap.String("stage", out.Stage.String()), zap.Error(err))
		return out, err
	}
	out.Stage = StageOwnershipMigrated

	if err := s.mergeCandidateTags(ctx, *candidate, newID); err != nil {
		log.Error("migration failed", zap.String("stage", out.Stage.String()), zap.Error(err))
		return out, err
	}
	out.Stage = StageTagged

	var canonical models.Game
	if err := s.db.WithContext(ctx).Preload("Genres").Preload("Platforms").First(&canonical, newID).Error; err != nil {
		return out, fmt.Errorf("failed to load canonical game %d: %w", newID, err)
	}
	out.Game = &canonical

	log.Info("migration complete",
		zap.Uint("canonical_id", canonical.ID),
		zap.String("external_id", canonical.ExternalID))
	return out, nil
}

// mergeCandidateTags copies the candidate's genre and platform names onto
// the canonical game.
func (s *Service) mergeCandidateTags(ctx context.Context, candidate provider.Candidate, gameID uint) error {
	genres := make([]string, 0, len(candidate.Genres))
	for _, g := range candidate.Genres {
		genres = append(genres, g.Name)
	}
	if err := s.MergeGenres(ctx, genres, gameID); err != nil {
		return err
	}

	platforms := make([]string, 0, len(candidate.Platforms))
	for _, p := range candidate.Platforms {
		platforms = append(platforms, p.Name)
	}
	return s.MergePlatforms(ctx, platforms, gameID)
}
