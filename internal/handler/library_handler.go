package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/joana-nicolaasponder/backlog-explorer-sub001/internal/database"
	"github.com/joana-nicolaasponder/backlog-explorer-sub001/internal/logger"
	"github.com/joana-nicolaasponder/backlog-explorer-sub001/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// region --- DTOs ---

// AddEntryInput is the richer add-flow payload: the provider candidate the
// user picked from /games/search plus their initial tracking fields.
type AddEntryInput struct {
	Game        CandidateResponse `json:"game" binding:"required"`
	Status      string            `json:"status"`
	Progress    int               `json:"progress"`
	Platforms   []string          `json:"platforms"`
	CustomImage string            `json:"custom_image"`
}

// UpdateEntryInput updates a library entry's tracking fields.
type UpdateEntryInput struct {
	Status      *string   `json:"status"`
	Progress    *int      `json:"progress"`
	Platforms   *[]string `json:"platforms"`
	CustomImage *string   `json:"custom_image"`
}

// EntryResponse defines the structure for a library entry with its game.
type EntryResponse struct {
	ID          uint         `json:"id"`
	Status      string       `json:"status"`
	Progress    int          `json:"progress"`
	Platforms   []string     `json:"platforms"`
	CustomImage string       `json:"custom_image,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Game        GameResponse `json:"game"`
}

func newEntryResponse(entry models.LibraryEntry) EntryResponse {
	return EntryResponse{
		ID:          entry.ID,
		Status:      string(entry.Status),
		Progress:    entry.Progress,
		Platforms:   entry.Platforms,
		CustomImage: entry.CustomImage,
		CreatedAt:   entry.CreatedAt,
		UpdatedAt:   entry.UpdatedAt,
		Game:        newGameResponse(entry.Game),
	}
}

// PaginatedEntryResponse defines the structure for a paginated library page.
type PaginatedEntryResponse struct {
	Data []EntryResponse `json:"data"`
	Meta PaginationMeta  `json:"meta"`
}

// endregion

// GetLibrary godoc
// @Summary      Get the user's library
// @Description  Retrieves the authenticated user's library entries, paginated, with optional filtering by status and title.
// @Tags         library
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "Filter by entry status"
// @Param        q      query string false "Search query for game title"
// @Param        page   query int    false "Page number" default(1)
// @Param        limit  query int    false "Items per page" default(10)
// @Success      200 {object} PaginatedEntryResponse
// @Router       /library [get]
func GetLibrary(c *gin.Context) {
	userID, _ := c.Get("userID")

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100 // Max limit
	}
	offset := (page - 1) * limit

	dbQuery := database.DB.Model(&models.LibraryEntry{}).Where("library_entries.user_id = ?", userID)
	if status := c.Query("status"); status != "" {
		dbQuery = dbQuery.Where("library_entries.status = ?", status)
	}
	if searchQuery := c.Query("q"); searchQuery != "" {
		dbQuery = dbQuery.
			Joins("JOIN games ON games.id = library_entries.game_id").
			Where("games.title ILIKE ?", "%"+searchQuery+"%")
	}

	var totalItems int64
	if err := dbQuery.Count(&totalItems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count library entries"})
		return
	}

	var entries []models.LibraryEntry
	err = dbQuery.
		Preload("Game").Preload("Game.Genres").Preload("Game.Platforms").
		Offset(offset).Limit(limit).
		Find(&entries).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve library entries"})
		return
	}

	response := make([]EntryResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, newEntryResponse(entry))
	}
	c.JSON(http.StatusOK, NewPaginatedResponse(response, totalItems, page, limit))
}

// AddLibraryEntry godoc
// @Summary      Add a game to the library
// @Description  Reconciles the picked provider candidate into a local game row, merges its genres and platforms, and creates (or refreshes) the user's entry.
// @Tags         library
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body AddEntryInput true "Candidate and tracking fields"
// @Success      201 {object} EntryResponse
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /library [post]
func AddLibraryEntry(c *gin.Context) {
	userID, _ := c.Get("userID")
	actingUserID := userID.(uint)

	var input AddEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Game.ID == "" || input.Game.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Candidate id and name are required"})
		return
	}

	ctx := c.Request.Context()
	candidate := input.Game.toCandidate()

	gameID, err := migrator.Reconcile(ctx, candidate, models.Game{})
	if err != nil {
		logger.WithRequestID(log, c).Error("add-flow reconcile failed",
			zap.String("candidate_id", candidate.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store game"})
		return
	}

	genres := make([]string, 0, len(candidate.Genres))
	for _, g := range candidate.Genres {
		genres = append(genres, g.Name)
	}
	platforms := make([]string, 0, len(candidate.Platforms))
	for _, p := range candidate.Platforms {
		platforms = append(platforms, p.Name)
	}
	if err := migrator.MergeGenres(ctx, genres, gameID); err != nil {
		logger.WithRequestID(log, c).Warn("genre merge failed", zap.Uint("game_id", gameID), zap.Error(err))
	}
	if err := migrator.MergePlatforms(ctx, platforms, gameID); err != nil {
		logger.WithRequestID(log, c).Warn("platform merge failed", zap.Uint("game_id", gameID), zap.Error(err))
	}

	status := models.EntryStatus(input.Status)
	if status == "" {
		status = models.StatusBacklog
	}

	var entry models.LibraryEntry
	err = database.DB.Where("user_id = ? AND game_id = ?", actingUserID, gameID).First(&entry).Error
	switch {
	case err == nil:
		// Already in the library: refresh tracking fields.
		entry.Status = status
		entry.Progress = input.Progress
		entry.Platforms = input.Platforms
		entry.CustomImage = input.CustomImage
		if err := database.DB.Save(&entry).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update library entry"})
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		entry = models.LibraryEntry{
			UserID:      actingUserID,
			GameID:      gameID,
			Status:      status,
			Progress:    input.Progress,
			Platforms:   input.Platforms,
			CustomImage: input.CustomImage,
		}
		if err := database.DB.Create(&entry).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create library entry"})
			return
		}
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check library"})
		return
	}

	database.DB.Preload("Game").Preload("Game.Genres").Preload("Game.Platforms").First(&entry, entry.ID)
	c.JSON(http.StatusCreated, newEntryResponse(entry))
}

// UpdateLibraryEntry godoc
// @Summary      Update a library entry
// @Description  Updates status, progress, platforms or custom image of one of the user's entries.
// @Tags         library
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int             true "Entry ID"
// @Param        input body UpdateEntryInput true "Fields to update"
// @Success      200 {object} EntryResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Entry not found"
// @Router       /library/{id} [put]
func UpdateLibraryEntry(c *gin.Context) {
	userID, _ := c.Get("userID")
	id, _ := strconv.Atoi(c.Param("id"))

	var entry models.LibraryEntry
	if err := database.DB.Where("user_id = ?", userID).First(&entry, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Library entry not found"})
		return
	}

	var input UpdateEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Status != nil {
		entry.Status = models.EntryStatus(*input.Status)
	}
	if input.Progress != nil {
		entry.Progress = *input.Progress
	}
	if input.Platforms != nil {
		entry.Platforms = *input.Platforms
	}
	if input.CustomImage != nil {
		entry.CustomImage = *input.CustomImage
	}

	if err := database.DB.Save(&entry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update library entry"})
		return
	}

	database.DB.Preload("Game").Preload("Game.Genres").Preload("Game.Platforms").First(&entry, entry.ID)
	c.JSON(http.StatusOK, newEntryResponse(entry))
}

// DeleteLibraryEntry godoc
// @Summary      Remove a game from the library
// @Description  Deletes one of the user's library entries. The game row itself is kept.
// @Tags         library
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Entry ID"
// @Success      200 {object} map[string]string "{"message": "Entry deleted"}"
// @Failure      404 {object} ErrorResponse "Entry not found"
// @Router       /library/{id} [delete]
func DeleteLibraryEntry(c *gin.Context) {
	userID, _ := c.Get("userID")
	id, _ := strconv.Atoi(c.Param("id"))

	// Unscoped: a soft-deleted row would keep holding the (user_id, game_id)
	// unique slot and turn a later re-add of the same game into a
	// duplicate-key failure.
	result := database.DB.Unscoped().Where("user_id = ?", userID).Delete(&models.LibraryEntry{}, id)
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Library entry not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Entry deleted"})
}
