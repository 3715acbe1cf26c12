package migration

import (
	"context"
	"testing"

	"github.com/joana-nicolaasponder/backlog-explorer-sub001/internal/provider"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestCandidates_FiltersByTitleMatch(t *testing.T) {
	fake := &fakeProvider{candidates: []provider.Candidate{
		{ID: "9001", Name: "Hollow Knight"},
	}}
	svc, mock := newTestService(t, fake)

	rows := sqlmock.NewRows([]string{"id", "provider", "external_id", "title"}).
		AddRow(42, "igdb", "9001", "Hollow Knight").
		AddRow(55, "rawg", "777", "Totally Different Game")
	mock.ExpectQuery(`SELECT \* FROM "games" WHERE id <> \$1`).
		WillReturnRows(rows)

	options, err := svc.Candidates(context.Background(), legacyGame(10, "Hollow Knight"))
	assert.NoError(t, err)
	if assert.Len(t, options, 1) {
		assert.Equal(t, uint(42), options[0].GameID)
		assert.Equal(t, "9001", options[0].ExternalID)
	}
}

func TestConfirm_RejectsNonCanonicalTarget(t *testing.T) {
	svc, mock := newTestService(t, &fakeProvider{})

	mock.ExpectQuery(`SELECT \* FROM "games" WHERE "games"\."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "provider", "external_id", "title"}).
			AddRow(55, "rawg", "777", "Hollow Knight"))

	_, err := svc.Confirm(context.Background(), legacyGame(10, "Hollow Knight"), 55)
	assert.ErrorIs(t, err, ErrNotCanonical)
}

func TestConfirm_MigratesIntoPickedRow(t *testing.T) {
	svc, mock := newTestService(t, &fakeProvider{})

	mock.ExpectQuery(`SELECT \* FROM "games" WHERE "games"\."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "provider", "external_id", "title"}).
			AddRow(42, "igdb", "9001", "Hollow Knight"))
	mock.ExpectQuery(`SELECT \* FROM "library_entries" WHERE game_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "game_id"}))

	out, err := svc.Confirm(context.Background(), legacyGame(10, "Hollow Knight"), 42)
	assert.NoError(t, err)
	assert.Equal(t, StageTagged, out.Stage)
	if assert.NotNil(t, out.Game) {
		assert.Equal(t, uint(42), out.Game.ID)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}
