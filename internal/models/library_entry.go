package models

import "gorm.io/gorm"

// EntryStatus defines where a game sits in a user's backlog.
type EntryStatus string

const (
	StatusBacklog   EntryStatus = "Backlog"
	StatusPlaying   EntryStatus = "Currently Playing"
	StatusDone      EntryStatus = "Done"
	StatusAbandoned EntryStatus = "Abandoned"
	StatusWishlist  EntryStatus = "Wishlist"
)

// LibraryEntry is a user's personal tracking row for one game: ownership,
// play status and progress. One row per (user, game), enforced by the
// composite unique index. Migration relies on that constraint rather than
// application-level locking when two attempts race. Entry removal must be
// unscoped or a soft-deleted row keeps occupying the unique slot.
type LibraryEntry struct {
	gorm.Model
	UserID   uint        `gorm:"not null;uniqueIndex:idx_library_user_game"`
	GameID   uint        `gorm:"not null;uniqueIndex:idx_library_user_game"`
	Status   EntryStatus `gorm:"size:50;not null;default:'Backlog'"`
	Progress int         `gorm:"not null;default:0"`

	// Platforms the user owns/plays this game on, a free-form subset of the
	// game's platform tags.
	Platforms []string `gorm:"serializer:json"`

	// CustomImage overrides the provider cover art when set.
	CustomImage string `gorm:"size:512"`

	User User `gorm:"foreignKey:UserID"`
	Game Game `gorm:"foreignKey:GameID"`
}
