package migration

import (
	"testing"

	"github.com/joana-nicolaasponder/backlog-explorer-sub001/internal/provider"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTitle(t *testing.T) {
	assert.Equal(t, "thewitcher3wildhunt", normalizeTitle("The Witcher 3: Wild Hunt"))
	assert.Equal(t, "nierautomata", normalizeTitle("NieR:Automata™"))
	assert.Equal(t, "hollowknight", normalizeTitle("  Hollow  Knight "))
	assert.Equal(t, "", normalizeTitle("!!!---"))
}

func TestTitlesMatch(t *testing.T) {
	opts := DefaultMatchOptions()

	t.Run("punctuation insensitive", func(t *testing.T) {
		assert.True(t, titlesMatch("The Witcher 3: Wild Hunt", "The Witcher 3 Wild Hunt", opts))
	})

	t.Run("symmetric containment", func(t *testing.T) {
		// Candidate carries the subtitle the local row lacks, and vice versa.
		assert.True(t, titlesMatch("The Witcher 3", "The Witcher 3: Wild Hunt", opts))
		assert.True(t, titlesMatch("The Witcher 3: Wild Hunt", "The Witcher 3", opts))
	})

	t.Run("different sequel is not a match", func(t *testing.T) {
		assert.False(t, titlesMatch("The Witcher 3: Wild Hunt", "The Witcher 2", opts))
	})

	t.Run("unrelated titles", func(t *testing.T) {
		assert.False(t, titlesMatch("Hollow Knight", "Totally Unrelated Game", opts))
	})

	t.Run("short titles require equality", func(t *testing.T) {
		// "doom" is contained in "doom3" but below MinExactLength the
		// containment shortcut is off.
		assert.False(t, titlesMatch("Doom", "Doom 3", opts))
		assert.True(t, titlesMatch("Doom", "DOOM", opts))
	})

	t.Run("empty never matches", func(t *testing.T) {
		assert.False(t, titlesMatch("", "Hollow Knight", opts))
		assert.False(t, titlesMatch("Hollow Knight", "", opts))
	})
}

func TestBestMatch(t *testing.T) {
	opts := DefaultMatchOptions()

	t.Run("first match in provider order wins", func(t *testing.T) {
		candidates := []provider.Candidate{
			{ID: "1", Name: "Witcher Card Game"},
			{ID: "2", Name: "The Witcher 3: Wild Hunt"},
			{ID: "3", Name: "The Witcher 3: Wild Hunt - Complete Edition"},
		}
		match := bestMatch("The Witcher 3 Wild Hunt", candidates, opts)
		if assert.NotNil(t, match) {
			assert.Equal(t, "2", match.ID)
		}
	})

	t.Run("no candidate matches", func(t *testing.T) {
		candidates := []provider.Candidate{
			{ID: "1", Name: "Totally Unrelated Game"},
		}
		assert.Nil(t, bestMatch("Hollow Knight", candidates, opts))
	})

	t.Run("empty result set", func(t *testing.T) {
		assert.Nil(t, bestMatch("Hollow Knight", nil, opts))
	})
}
