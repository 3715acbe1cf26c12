package models

import "gorm.io/gorm"

// Provider identifies which metadata source a game row came from.
type Provider string

const (
	// ProviderRAWG is the legacy metadata source. Rows under it are kept
	// for history but new rows are no longer created.
	ProviderRAWG Provider = "rawg"

	// ProviderIGDB is the current metadata source.
	ProviderIGDB Provider = "igdb"
)

// Game represents one game from one metadata provider. A title that exists
// under both providers has two rows; migration re-points library entries to
// the IGDB row and leaves the RAWG row orphaned.
type Game struct {
	gorm.Model
	Provider    Provider `gorm:"size:20;not null;uniqueIndex:idx_games_provider_external"`
	ExternalID  string   `gorm:"size:64;not null;uniqueIndex:idx_games_provider_external"`
	Title       string   `gorm:"size:255;not null"`
	Description string
	CoverImage  string `gorm:"size:512"`
	Rating      float64
	ReleaseDate string `gorm:"size:32"`

	Genres    []*Genre    `gorm:"many2many:game_genres;"`
	Platforms []*Platform `gorm:"many2many:game_platforms;"`
}
