package handlers

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/curalink-dev/curalink/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func connectionRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "from_user_id", "to_user_id", "status", "message"})
}

func boolPtr(b bool) *bool { return &b }

func TestRespondConnectionRecipientAccepts(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "connection_requests"`).
		WillReturnRows(connectionRows().AddRow(6, 1, 2, "pending", "hello"))
	mock.ExpectExec(`UPDATE "connection_requests"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	user := &middleware.AuthenticatedUser{ID: 2, Role: "researcher"}
	ctx, recorder := newTestContext(t, http.MethodPost, "/api/connections/6/respond", RespondConnectionRequest{Accept: boolPtr(true)}, user)
	ctx.Params = gin.Params{{Key: "request_id", Value: "6"}}

	RespondConnection(ctx)

	require.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]string
	decodeBody(t, recorder, &body)
	assert.Equal(t, "accepted", body["status"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRespondConnectionRejects(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "connection_requests"`).
		WillReturnRows(connectionRows().AddRow(6, 1, 2, "pending", ""))
	mock.ExpectExec(`UPDATE "connection_requests"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	user := &middleware.AuthenticatedUser{ID: 2, Role: "researcher"}
	ctx, recorder := newTestContext(t, http.MethodPost, "/api/connections/6/respond", RespondConnectionRequest{Accept: boolPtr(false)}, user)
	ctx.Params = gin.Params{{Key: "request_id", Value: "6"}}

	RespondConnection(ctx)

	require.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]string
	decodeBody(t, recorder, &body)
	assert.Equal(t, "rejected", body["status"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRespondConnectionThirdPartyForbidden(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "connection_requests"`).
		WillReturnRows(connectionRows().AddRow(6, 1, 2, "pending", ""))

	user := &middleware.AuthenticatedUser{ID: 3, Role: "researcher"}
	ctx, recorder := newTestContext(t, http.MethodPost, "/api/connections/6/respond", RespondConnectionRequest{Accept: boolPtr(true)}, user)
	ctx.Params = gin.Params{{Key: "request_id", Value: "6"}}

	RespondConnection(ctx)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRespondConnectionAlreadyTerminalConflicts(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "connection_requests"`).
		WillReturnRows(connectionRows().AddRow(6, 1, 2, "accepted", ""))

	user := &middleware.AuthenticatedUser{ID: 2, Role: "researcher"}
	ctx, recorder := newTestContext(t, http.MethodPost, "/api/connections/6/respond", RespondConnectionRequest{Accept: boolPtr(true)}, user)
	ctx.Params = gin.Params{{Key: "request_id", Value: "6"}}

	RespondConnection(ctx)

	assert.Equal(t, http.StatusConflict, recorder.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRespondConnectionNotFound(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "connection_requests"`).
		WillReturnRows(connectionRows())

	user := &middleware.AuthenticatedUser{ID: 2, Role: "researcher"}
	ctx, recorder := newTestContext(t, http.MethodPost, "/api/connections/99/respond", RespondConnectionRequest{Accept: boolPtr(true)}, user)
	ctx.Params = gin.Params{{Key: "request_id", Value: "99"}}

	RespondConnection(ctx)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSendConnectionToSelfRejected(t *testing.T) {
	setupMockDB(t)

	user := &middleware.AuthenticatedUser{ID: 2, Role: "patient"}
	ctx, recorder := newTestContext(t, http.MethodPost, "/api/connections", SendConnectionRequest{ToUserID: 2}, user)

	SendConnection(ctx)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestSendConnectionCreatesPending(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(5, "Dr. Lee"))
	mock.ExpectQuery(`INSERT INTO "connection_requests"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21))

	user := &middleware.AuthenticatedUser{ID: 2, Role: "patient"}
	ctx, recorder := newTestContext(t, http.MethodPost, "/api/connections", SendConnectionRequest{ToUserID: 5, Message: "hi"}, user)

	SendConnection(ctx)

	require.Equal(t, http.StatusCreated, recorder.Code)

	var body map[string]uint
	decodeBody(t, recorder, &body)
	assert.Equal(t, uint(21), body["request_id"])

	assert.NoError(t, mock.ExpectationsWereMet())
}
