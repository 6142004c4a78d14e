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

func trialRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "description", "phase", "status", "conditions", "created_by_id"})
}

func TestUpdateTrialByNonCreatorForbidden(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "clinical_trials"`).
		WillReturnRows(trialRows().AddRow(5, "Trial T", "desc", "phase_2", "recruiting", "{diabetes}", 2))

	user := &middleware.AuthenticatedUser{ID: 1, Role: "researcher"}
	status := "completed"
	ctx, recorder := newTestContext(t, http.MethodPatch, "/api/trials/5", UpdateTrialRequest{Status: &status}, user)
	ctx.Params = gin.Params{{Key: "trial_id", Value: "5"}}

	UpdateTrial(ctx)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTrialByCreatorSucceeds(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "clinical_trials"`).
		WillReturnRows(trialRows().AddRow(5, "Trial T", "desc", "phase_2", "recruiting", "{diabetes}", 1))
	mock.ExpectExec(`UPDATE "clinical_trials"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	user := &middleware.AuthenticatedUser{ID: 1, Role: "researcher"}
	status := "completed"
	ctx, recorder := newTestContext(t, http.MethodPatch, "/api/trials/5", UpdateTrialRequest{Status: &status}, user)
	ctx.Params = gin.Params{{Key: "trial_id", Value: "5"}}

	UpdateTrial(ctx)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateImportedTrialForbidden(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "clinical_trials"`).
		WillReturnRows(trialRows().AddRow(5, "Imported", "desc", "phase_3", "recruiting", "{diabetes}", nil))

	user := &middleware.AuthenticatedUser{ID: 1, Role: "researcher"}
	status := "completed"
	ctx, recorder := newTestContext(t, http.MethodPatch, "/api/trials/5", UpdateTrialRequest{Status: &status}, user)
	ctx.Params = gin.Params{{Key: "trial_id", Value: "5"}}

	UpdateTrial(ctx)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTrialNotFound(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "clinical_trials"`).
		WillReturnRows(trialRows())

	ctx, recorder := newTestContext(t, http.MethodGet, "/api/trials/99", nil, nil)
	ctx.Params = gin.Params{{Key: "trial_id", Value: "99"}}

	GetTrial(ctx)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTrialRequiresResearcherRole(t *testing.T) {
	setupMockDB(t)

	user := &middleware.AuthenticatedUser{ID: 1, Role: "patient"}
	ctx, recorder := newTestContext(t, http.MethodPost, "/api/trials", nil, user)

	CreateTrial(ctx)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestGetRecommendedTrialsMatchesSubstring(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "role", "medical_conditions"}).
			AddRow(1, "patient", "{diabetes}"))

	mock.ExpectQuery(`SELECT \* FROM "clinical_trials"`).
		WillReturnRows(trialRows().
			AddRow(10, "Diabetes Trial", "desc", "phase_2", "recruiting", `{"Type 2 Diabetes"}`, 2).
			AddRow(11, "Hypertension Trial", "desc", "phase_3", "recruiting", "{Hypertension}", 2))

	user := &middleware.AuthenticatedUser{ID: 1, Role: "patient"}
	ctx, recorder := newTestContext(t, http.MethodGet, "/api/trials/recommended", nil, user)

	GetRecommendedTrials(ctx)

	require.Equal(t, http.StatusOK, recorder.Code)

	var body []TrialResponse
	decodeBody(t, recorder, &body)
	require.Len(t, body, 1)
	assert.Equal(t, uint(10), body[0].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRecommendedTrialsEmptyConditions(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "role", "medical_conditions"}).
			AddRow(1, "patient", "{}"))

	user := &middleware.AuthenticatedUser{ID: 1, Role: "patient"}
	ctx, recorder := newTestContext(t, http.MethodGet, "/api/trials/recommended", nil, user)

	GetRecommendedTrials(ctx)

	require.Equal(t, http.StatusOK, recorder.Code)

	var body []TrialResponse
	decodeBody(t, recorder, &body)
	assert.Empty(t, body)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRecommendedTrialsCapsAtLimit(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "role", "medical_conditions"}).
			AddRow(1, "patient", "{diabetes}"))

	rows := trialRows()
	for i := 1; i <= 15; i++ {
		rows.AddRow(i, "Trial", "desc", "phase_1", "recruiting", "{diabetes}", 2)
	}
	mock.ExpectQuery(`SELECT \* FROM "clinical_trials"`).WillReturnRows(rows)

	user := &middleware.AuthenticatedUser{ID: 1, Role: "patient"}
	ctx, recorder := newTestContext(t, http.MethodGet, "/api/trials/recommended", nil, user)

	GetRecommendedTrials(ctx)

	require.Equal(t, http.StatusOK, recorder.Code)

	var body []TrialResponse
	decodeBody(t, recorder, &body)
	assert.Len(t, body, 10)

	assert.NoError(t, mock.ExpectationsWereMet())
}
