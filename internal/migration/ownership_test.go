package migration

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestMigrateOwnership_RepointsEntry(t *testing.T) {
	svc, mock := newTestService(t, &fakeProvider{})

	entryRows := sqlmock.NewRows([]string{"id", "user_id", "game_id", "status", "progress", "platforms"}).
		AddRow(7, 1, 10, "Currently Playing", 40, `["PC"]`)
	mock.ExpectQuery(`SELECT \* FROM "library_entries" WHERE game_id = \$1`).
		WillReturnRows(entryRows)
	mock.ExpectQuery(`SELECT \* FROM "library_entries" WHERE user_id = \$1 AND game_id = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	// Only game_id moves; status, progress, platforms and custom image stay
	// on the row untouched.
	mock.ExpectExec(`UPDATE "library_entries" SET "game_id"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := svc.migrateOwnership(context.Background(), 10, 42)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateOwnership_CollisionKeepsCanonicalEntry(t *testing.T) {
	svc, mock := newTestService(t, &fakeProvider{})

	entryRows := sqlmock.NewRows([]string{"id", "user_id", "game_id", "status", "progress"}).
		AddRow(7, 1, 10, "Backlog", 0)
	mock.ExpectQuery(`SELECT \* FROM "library_entries" WHERE game_id = \$1`).
		WillReturnRows(entryRows)

	// The user already tracks the canonical game; the legacy entry goes, the
	// existing one is not touched (no merge of status/progress). The removal
	// must be a hard DELETE: a soft-deleted row would keep occupying the
	// (user_id, game_id) unique slot and break a later re-add of the game.
	mock.ExpectQuery(`SELECT \* FROM "library_entries" WHERE user_id = \$1 AND game_id = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "game_id", "status", "progress"}).
			AddRow(99, 1, 42, "Done", 100))
	mock.ExpectExec(`DELETE FROM "library_entries"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := svc.migrateOwnership(context.Background(), 10, 42)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateOwnership_PartialFailureContinues(t *testing.T) {
	svc, mock := newTestService(t, &fakeProvider{})

	entryRows := sqlmock.NewRows([]string{"id", "user_id", "game_id"}).
		AddRow(7, 1, 10).
		AddRow(8, 2, 10)
	mock.ExpectQuery(`SELECT \* FROM "library_entries" WHERE game_id = \$1`).
		WillReturnRows(entryRows)

	// First user's collision check blows up; the second user still migrates.
	mock.ExpectQuery(`SELECT \* FROM "library_entries" WHERE user_id = \$1 AND game_id = \$2`).
		WillReturnError(assert.AnError)
	mock.ExpectQuery(`SELECT \* FROM "library_entries" WHERE user_id = \$1 AND game_id = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec(`UPDATE "library_entries" SET "game_id"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := svc.migrateOwnership(context.Background(), 10, 42)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateOwnership_FetchFailureAborts(t *testing.T) {
	svc, mock := newTestService(t, &fakeProvider{})

	mock.ExpectQuery(`SELECT \* FROM "library_entries" WHERE game_id = \$1`).
		WillReturnError(assert.AnError)

	err := svc.migrateOwnership(context.Background(), 10, 42)
	assert.Error(t, err)
}
