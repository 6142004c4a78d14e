package handlers

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/curalink-dev/curalink/internal/middleware"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddFavoriteIdempotent(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "favorites"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "item_type", "item_id"}).
			AddRow(7, 1, "trial", "42"))

	user := &middleware.AuthenticatedUser{ID: 1, Role: "patient"}
	ctx, recorder := newTestContext(t, http.MethodPost, "/api/favorites", FavoriteRequest{ItemType: "trial", ItemID: "42"}, user)

	AddFavorite(ctx)

	require.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]uint
	decodeBody(t, recorder, &body)
	assert.Equal(t, uint(7), body["favorite_id"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddFavoriteNew(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "favorites"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "favorites"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	user := &middleware.AuthenticatedUser{ID: 1, Role: "patient"}
	ctx, recorder := newTestContext(t, http.MethodPost, "/api/favorites", FavoriteRequest{ItemType: "trial", ItemID: "42"}, user)

	AddFavorite(ctx)

	require.Equal(t, http.StatusCreated, recorder.Code)

	var body map[string]uint
	decodeBody(t, recorder, &body)
	assert.Equal(t, uint(3), body["favorite_id"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddFavoriteInsertRaceReturnsExisting(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "favorites"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "favorites"`).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectQuery(`SELECT \* FROM "favorites"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "item_type", "item_id"}).
			AddRow(11, 1, "trial", "42"))

	user := &middleware.AuthenticatedUser{ID: 1, Role: "patient"}
	ctx, recorder := newTestContext(t, http.MethodPost, "/api/favorites", FavoriteRequest{ItemType: "trial", ItemID: "42"}, user)

	AddFavorite(ctx)

	require.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]uint
	decodeBody(t, recorder, &body)
	assert.Equal(t, uint(11), body["favorite_id"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddFavoriteInvalidItemType(t *testing.T) {
	setupMockDB(t)

	user := &middleware.AuthenticatedUser{ID: 1, Role: "patient"}
	ctx, recorder := newTestContext(t, http.MethodPost, "/api/favorites", FavoriteRequest{ItemType: "bookmark", ItemID: "42"}, user)

	AddFavorite(ctx)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestAddFavoriteUnauthenticated(t *testing.T) {
	setupMockDB(t)

	ctx, recorder := newTestContext(t, http.MethodPost, "/api/favorites", FavoriteRequest{ItemType: "trial", ItemID: "42"}, nil)

	AddFavorite(ctx)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestRemoveFavoriteExisting(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "favorites"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "item_type", "item_id"}).
			AddRow(7, 1, "trial", "42"))
	mock.ExpectExec(`DELETE FROM "favorites"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	user := &middleware.AuthenticatedUser{ID: 1, Role: "patient"}
	ctx, recorder := newTestContext(t, http.MethodDelete, "/api/favorites", FavoriteRequest{ItemType: "trial", ItemID: "42"}, user)

	RemoveFavorite(ctx)
	ctx.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveFavoriteMissingIsNoOp(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "favorites"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	user := &middleware.AuthenticatedUser{ID: 1, Role: "patient"}
	ctx, recorder := newTestContext(t, http.MethodDelete, "/api/favorites", FavoriteRequest{ItemType: "trial", ItemID: "999"}, user)

	RemoveFavorite(ctx)
	ctx.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListFavoritesFiltersByType(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "favorites"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "item_type", "item_id"}).
			AddRow(1, 1, "trial", "42").
			AddRow(2, 1, "trial", "43"))

	user := &middleware.AuthenticatedUser{ID: 1, Role: "patient"}
	ctx, recorder := newTestContext(t, http.MethodGet, "/api/favorites?item_type=trial", nil, user)

	ListFavorites(ctx)

	require.Equal(t, http.StatusOK, recorder.Code)

	var body []FavoriteResponse
	decodeBody(t, recorder, &body)
	require.Len(t, body, 2)
	assert.Equal(t, "42", body[0].ItemID)

	assert.NoError(t, mock.ExpectationsWereMet())
}
