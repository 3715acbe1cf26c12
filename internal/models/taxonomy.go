package models

import "gorm.io/gorm"

// Genre represents a canonical genre tag (e.g., "RPG", "Metroidvania").
type Genre struct {
	gorm.Model
	Name string `gorm:"size:100;unique;not null"`
}

// Platform represents a canonical platform tag (e.g., "PC", "Nintendo Switch").
type Platform struct {
	gorm.Model
	Name string `gorm:"size:100;unique;not null"`
}

// GameGenre is the game↔genre join row. The composite primary key keeps the
// association unique; taxonomy merging inserts rows here directly so it can
// add missing links without touching existing ones.
type GameGenre struct {
	GameID  uint `gorm:"primaryKey"`
	GenreID uint `gorm:"primaryKey"`
}

// TableName keeps the join table shared with the Game.Genres association.
func (GameGenre) TableName() string { return "game_genres" }

// GamePlatform is the game↔platform join row.
type GamePlatform struct {
	GameID     uint `gorm:"primaryKey"`
	PlatformID uint `gorm:"primaryKey"`
}

// TableName keeps the join table shared with the Game.Platforms association.
func (GamePlatform) TableName() string { return "game_platforms" }
