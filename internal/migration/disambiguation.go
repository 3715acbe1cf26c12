package migration

import (
	"context"
	"errors"
	"fmt"

	"github.com/joana-nicolaasponder/backlog-explorer-sub001/internal/models"
)

// GameOption is one local row that could plausibly correspond to the
// resolved external id, surfaced for a human to pick from. The system never
// auto-merges when more than one option exists: a wrong silent merge of two
// distinct games is worse than asking.
type GameOption struct {
	GameID     uint            `json:"game_id"`
	Provider   models.Provider `json:"provider"`
	ExternalID string          `json:"external_id"`
	Title      string          `json:"title"`
	CoverImage string          `json:"cover_image,omitempty"`
}

// Candidates lists the local rows that could be the canonical target for a
// legacy game: the IGDB row for the resolved external id plus any other row
// whose title matches under the containment heuristic.
func (s *Service) Candidates(ctx context.Context, legacy models.Game) ([]GameOption, error) {
	candidate, err := s.resolve(ctx, legacy.Title)
	if err != nil {
		return nil, err
	}

	var rows []models.Game
	query := s.db.WithContext(ctx).Where("id <> ?", legacy.ID)
	if candidate != nil {
		query = query.Where(
			"(provider = ? AND external_id = ?) OR title ILIKE ?",
			models.ProviderIGDB, candidate.ID, "%"+legacy.Title+"%",
		)
	} else {
		query = query.Where("title ILIKE ?", "%"+legacy.Title+"%")
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list candidate rows for %q: %w", legacy.Title, err)
	}

	options := make([]GameOption, 0, len(rows))
	for _, row := range rows {
		if !titlesMatch(legacy.Title, row.Title, s.opts) {
			continue
		}
		options = append(options, GameOption{
			GameID:     row.ID,
			Provider:   row.Provider,
			ExternalID: row.ExternalID,
			Title:      row.Title,
			CoverImage: row.CoverImage,
		})
	}
	return options, nil
}

// ErrNotCanonical is returned when a confirmed target is not an IGDB row.
var ErrNotCanonical = errors.New("confirmed target is not an IGDB-backed game")

// Confirm migrates a legacy game into the target row the user picked from
// Candidates. Resolution and reconciliation are skipped: the human decision
// replaces them. Ownership moves and the legacy row is left orphaned, same
// as the automatic path.
func (s *Service) Confirm(ctx context.Context, legacy models.Game, targetID uint) (*Outcome, error) {
	out := &Outcome{Stage: StageResolved}

	var target models.Game
	if err := s.db.WithContext(ctx).First(&target, targetID).Error; err != nil {
		return out, fmt.Errorf("failed to load confirmed target %d: %w", targetID, err)
	}
	if target.Provider != models.ProviderIGDB {
		return out, ErrNotCanonical
	}
	out.Stage = StageReconciled

	if err := s.migrateOwnership(ctx, legacy.ID, target.ID); err != nil {
		return out, err
	}
	out.Stage = StageOwnershipMigrated

	// No external candidate in this path; the target keeps its own tags.
	out.Stage = StageTagged
	out.Game = &target
	return out, nil
}
