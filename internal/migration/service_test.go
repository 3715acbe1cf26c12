package migration

import (
	"context"
	"testing"

	"github.com/joana-nicolaasponder/backlog-explorer-sub001/internal/models"
	"github.com/joana-nicolaasponder/backlog-explorer-sub001/internal/provider"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}
	mock.MatchExpectationsInOrder(false)

	dialector := gormpostgres.New(gormpostgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

// fakeProvider is a canned-response stand-in for the IGDB client.
type fakeProvider struct {
	candidates []provider.Candidate
	err        error
	queries    []string
}

func (f *fakeProvider) Search(ctx context.Context, title string) ([]provider.Candidate, error) {
	f.queries = append(f.queries, title)
	if f.err != nil {
		return nil, f.err
	}
	return f.candidates, nil
}

func (f *fakeProvider) Name() string { return "IGDB" }

func newTestService(t *testing.T, fake *fakeProvider) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := setupMockDB(t)
	return NewService(db, fake, zap.NewNop(), DefaultMatchOptions()), mock
}

func legacyGame(id uint, title string) models.Game {
	return models.Game{
		Model:      gorm.Model{ID: id},
		Provider:   models.ProviderRAWG,
		ExternalID: "1234",
		Title:      title,
	}
}

func TestMigrateToIGDB_EndToEnd(t *testing.T) {
	fake := &fakeProvider{candidates: []provider.Candidate{
		{ID: "9001", Name: "Hollow Knight", Genres: []provider.GenreRef{{Name: "Metroidvania"}}},
	}}
	svc, mock := newTestService(t, fake)

	// Reconcile: no canonical row yet, one gets created.
	mock.ExpectQuery(`SELECT \* FROM "games" WHERE provider = \$1 AND external_id = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "games"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	// Ownership: one user owns the legacy game, no collision.
	entryRows := sqlmock.NewRows([]string{"id", "user_id", "game_id", "status", "progress"}).
		AddRow(7, 1, 10, "Currently Playing", 40)
	mock.ExpectQuery(`SELECT \* FROM "library_entries" WHERE game_id = \$1`).
		WillReturnRows(entryRows)
	mock.ExpectQuery(`SELECT \* FROM "library_entries" WHERE user_id = \$1 AND game_id = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec(`UPDATE "library_entries" SET "game_id"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// Taxonomy: genre upserted and linked.
	mock.ExpectQuery(`INSERT INTO "genres"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectQuery(`SELECT \* FROM "genres" WHERE name IN`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(3, "Metroidvania"))
	mock.ExpectQuery(`SELECT \* FROM "game_genres" WHERE game_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"game_id", "genre_id"}))
	mock.ExpectExec(`INSERT INTO "game_genres"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// Final reload of the canonical row with its taxonomy.
	mock.ExpectQuery(`SELECT \* FROM "games" WHERE "games"\."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "provider", "external_id", "title"}).
			AddRow(42, "igdb", "9001", "Hollow Knight"))
	mock.ExpectQuery(`SELECT \* FROM "game_genres" WHERE "game_genres"\."game_id"`).
		WillReturnRows(sqlmock.NewRows([]string{"game_id", "genre_id"}).AddRow(42, 3))
	mock.ExpectQuery(`SELECT \* FROM "genres" WHERE "genres"\."id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(3, "Metroidvania"))
	mock.ExpectQuery(`SELECT \* FROM "game_platforms" WHERE "game_platforms"\."game_id"`).
		WillReturnRows(sqlmock.NewRows([]string{"game_id", "platform_id"}))

	out, err := svc.MigrateToIGDB(context.Background(), legacyGame(10, "Hollow Knight"))
	assert.NoError(t, err)
	assert.Equal(t, StageTagged, out.Stage)
	if assert.NotNil(t, out.Game) {
		assert.Equal(t, models.ProviderIGDB, out.Game.Provider)
		assert.Equal(t, "9001", out.Game.ExternalID)
		if assert.Len(t, out.Game.Genres, 1) {
			assert.Equal(t, "Metroidvania", out.Game.Genres[0].Name)
		}
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateToIGDB_NoMatch(t *testing.T) {
	fake := &fakeProvider{candidates: []provider.Candidate{
		{ID: "1", Name: "Totally Unrelated Game"},
	}}
	svc, mock := newTestService(t, fake)

	out, err := svc.MigrateToIGDB(context.Background(), legacyGame(10, "Hollow Knight"))
	assert.NoError(t, err)
	assert.Equal(t, StageNoMatch, out.Stage)
	assert.Nil(t, out.Game)

	// No rows written, no rows read: the legacy record is untouched.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateToIGDB_SearchFailure(t *testing.T) {
	fake := &fakeProvider{err: assert.AnError}
	svc, _ := newTestService(t, fake)

	out, err := svc.MigrateToIGDB(context.Background(), legacyGame(10, "Hollow Knight"))
	assert.Error(t, err)
	assert.Equal(t, StageResolving, out.Stage)
	assert.Nil(t, out.Game)
}

func TestMigrateToIGDB_AlreadyCanonical(t *testing.T) {
	fake := &fakeProvider{}
	svc, _ := newTestService(t, fake)

	game := models.Game{
		Model:      gorm.Model{ID: 42},
		Provider:   models.ProviderIGDB,
		ExternalID: "9001",
		Title:      "Hollow Knight",
	}
	out, err := svc.MigrateToIGDB(context.Background(), game)
	assert.NoError(t, err)
	assert.Equal(t, StageTagged, out.Stage)
	if assert.NotNil(t, out.Game) {
		assert.Equal(t, uint(42), out.Game.ID)
	}
	assert.Empty(t, fake.queries)
}
