package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/joana-nicolaasponder/backlog-explorer-sub001/internal/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupMockDB swaps the package-level database.DB for a sqlmock-backed one
// for the duration of a test.
func setupMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	prev := database.DB
	database.DB = gormDB
	t.Cleanup(func() { database.DB = prev })

	return mock
}

// deleteContext builds an authenticated DELETE request context for a
// path-id handler.
func deleteContext(t *testing.T, id string, userID uint) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: id}}
	c.Set("userID", userID)
	return c, w
}

func TestDeleteLibraryEntry_HardDeletesRow(t *testing.T) {
	mock := setupMockDB(t)

	// The delete must be a real DELETE, not a soft-delete UPDATE: a
	// soft-deleted row would keep occupying the (user_id, game_id) unique
	// slot and a later re-add of the same game would fail on the index.
	mock.ExpectExec(`DELETE FROM "library_entries" WHERE user_id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, w := deleteContext(t, "7", 1)
	DeleteLibraryEntry(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteLibraryEntry_NotFound(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectExec(`DELETE FROM "library_entries" WHERE user_id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	c, w := deleteContext(t, "7", 1)
	DeleteLibraryEntry(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteGenre_HardDeletesRow(t *testing.T) {
	mock := setupMockDB(t)

	// Same constraint as library entries, on the unique genre name: a
	// soft-deleted genre would make every later merge of that name a silent
	// ON CONFLICT no-op.
	mock.ExpectExec(`DELETE FROM "genres"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, w := deleteContext(t, "3", 1)
	DeleteGenre(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
