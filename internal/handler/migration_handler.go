package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/joana-nicolaasponder/backlog-explorer-sub001/internal/database"
	"github.com/joana-nicolaasponder/backlog-explorer-sub001/internal/logger"
	"github.com/joana-nicolaasponder/backlog-explorer-sub001/internal/migration"
	"github.com/joana-nicolaasponder/backlog-explorer-sub001/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// region --- DTOs ---

// MigrateResponse reports one migration attempt. Migrated is false both on
// no-match and on infrastructure failure; the frontend falls back to the
// legacy record either way.
type MigrateResponse struct {
	Migrated bool           `json:"migrated"`
	Stage    string         `json:"stage"`
	Game     *GameResponse  `json:"game,omitempty"`
	Entry    *EntryResponse `json:"entry,omitempty"`
}

// ConfirmInput carries the local game row the user picked from the
// disambiguation candidates.
type ConfirmInput struct {
	GameID uint `json:"game_id" binding:"required"`
}

// endregion

// loadOwnedLegacyEntry fetches the entry with its game, scoped to the acting
// user.
func loadOwnedLegacyEntry(c *gin.Context) (*models.LibraryEntry, bool) {
	userID, _ := c.Get("userID")
	id, _ := strconv.Atoi(c.Param("id"))

	var entry models.LibraryEntry
	if err := database.DB.Preload("Game").Where("user_id = ?", userID).First(&entry, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Library entry not found"})
		return nil, false
	}
	return &entry, true
}

// MigrateEntry godoc
// @Summary      Migrate a legacy entry to IGDB
// @Description  Resolves the entry's RAWG-sourced game against IGDB and re-points ownership to the canonical row. Returns migrated=false when no match is found or the attempt fails; the legacy record stays authoritative.
// @Tags         migration
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Entry ID"
// @Success      200 {object} MigrateResponse
// @Failure      404 {object} ErrorResponse "Entry not found"
// @Router       /library/{id}/migrate [post]
func MigrateEntry(c *gin.Context) {
	entry, ok := loadOwnedLegacyEntry(c)
	if !ok {
		return
	}

	out, err := migrator.MigrateToIGDB(c.Request.Context(), entry.Game)
	if err != nil {
		// Degrade gracefully: the UI treats this like a no-match.
		logger.WithRequestID(log, c).Error("migration attempt failed",
			zap.Uint("entry_id", entry.ID), zap.Error(err))
		c.JSON(http.StatusOK, MigrateResponse{Migrated: false, Stage: out.Stage.String()})
		return
	}
	if out.Game == nil {
		c.JSON(http.StatusOK, MigrateResponse{Migrated: false, Stage: out.Stage.String()})
		return
	}

	c.JSON(http.StatusOK, migratedResponse(entry.UserID, out))
}

// MigrationCandidates godoc
// @Summary      List disambiguation candidates
// @Description  Surfaces the local game rows that could plausibly be the canonical target for this entry's legacy game. The pick is the user's; the system never merges ambiguous rows on its own.
// @Tags         migration
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Entry ID"
// @Success      200 {array} migration.GameOption
// @Failure      404 {object} ErrorResponse "Entry not found"
// @Failure      502 {object} ErrorResponse "Provider unavailable"
// @Router       /library/{id}/migrate/candidates [get]
func MigrationCandidates(c *gin.Context) {
	entry, ok := loadOwnedLegacyEntry(c)
	if !ok {
		return
	}

	options, err := migrator.Candidates(c.Request.Context(), entry.Game)
	if err != nil {
		logger.WithRequestID(log, c).Error("candidate listing failed",
			zap.Uint("entry_id", entry.ID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not list candidates"})
		return
	}
	if options == nil {
		options = []migration.GameOption{}
	}
	c.JSON(http.StatusOK, options)
}

// ConfirmMigration godoc
// @Summary      Migrate into a user-picked game row
// @Description  Completes a migration using the candidate the user chose, skipping automatic resolution.
// @Tags         migration
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int          true "Entry ID"
// @Param        input body ConfirmInput true "Chosen game row"
// @Success      200 {object} MigrateResponse
// @Failure      400 {object} ErrorResponse "Target is not an IGDB game"
// @Failure      404 {object} ErrorResponse "Entry not found"
// @Router       /library/{id}/migrate/confirm [post]
func ConfirmMigration(c *gin.Context) {
	entry, ok := loadOwnedLegacyEntry(c)
	if !ok {
		return
	}

	var input ConfirmInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := migrator.Confirm(c.Request.Context(), entry.Game, input.GameID)
	if err != nil {
		if errors.Is(err, migration.ErrNotCanonical) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Chosen game is not an IGDB-backed record"})
			return
		}
		logger.WithRequestID(log, c).Error("confirmed migration failed",
			zap.Uint("entry_id", entry.ID), zap.Uint("target_id", input.GameID), zap.Error(err))
		c.JSON(http.StatusOK, MigrateResponse{Migrated: false, Stage: out.Stage.String()})
		return
	}

	c.JSON(http.StatusOK, migratedResponse(entry.UserID, out))
}

// migratedResponse builds the success payload, reloading the user's entry
// which now points at the canonical game.
func migratedResponse(userID uint, out *migration.Outcome) MigrateResponse {
	resp := MigrateResponse{Migrated: true, Stage: out.Stage.String()}
	if out.Game != nil {
		game := newGameResponse(*out.Game)
		resp.Game = &game

		var entry models.LibraryEntry
		err := database.DB.Preload("Game").Preload("Game.Genres").Preload("Game.Platforms").
			Where("user_id = ? AND game_id = ?", userID, out.Game.ID).
			First(&entry).Error
		if err == nil {
			er := newEntryResponse(entry)
			resp.Entry = &er
		}
	}
	return resp
}
