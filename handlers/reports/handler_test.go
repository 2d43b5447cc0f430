package reports

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"fanloop-backend/testutils"
	"fanloop-backend/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	testutils.InitTestMain()

	log.SetOutput(io.Discard)

	exitCode := m.Run()

	log.SetOutput(os.Stdout)

	os.Exit(exitCode)
}

const (
	reporterID  = "abc12345-e89b-12d3-a456-426614174000"
	ownerID     = "def67890-e89b-12d3-a456-426614174000"
	reportPosID = "123e4567-e89b-12d3-a456-426614174000"
)

func reportRouter() *gin.Engine {
	r := testutils.SetupTestRouter()
	r.POST("/posts/:id/report", func(c *gin.Context) {
		c.Set("user_id", reporterID)
		ReportPost(c)
	})
	return r
}

func reportBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(map[string]string{"reason": "HARASSMENT"})
	assert.NoError(t, err)
	return bytes.NewBuffer(body)
}

func TestReportPost_FirstReportHidesPost(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "posts" WHERE id = \$1(.+)`).
		WithArgs(reportPosID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name"}).
			AddRow(reportPosID, ownerID, "Test Post"))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "reports" (.+) RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("report123"))
	mock.ExpectCommit()

	// Threshold check: one report is enough to hide.
	mock.ExpectQuery(`SELECT count\(\*\) FROM "reports" WHERE target_type = \$1 AND target_id = \$2`).
		WithArgs("POST", reportPosID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "posts" SET (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Owner notification.
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "notifications" (.+) RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("notif123"))
	mock.ExpectCommit()

	req, _ := http.NewRequest(http.MethodPost, "/posts/"+reportPosID+"/report", reportBody(t))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	reportRouter().ServeHTTP(resp, req)

	assert.Equal(t, http.StatusCreated, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportPost_SelfReportRefused(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "posts" WHERE id = \$1(.+)`).
		WithArgs(reportPosID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name"}).
			AddRow(reportPosID, reporterID, "Test Post"))

	req, _ := http.NewRequest(http.MethodPost, "/posts/"+reportPosID+"/report", reportBody(t))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	reportRouter().ServeHTTP(resp, req)

	assert.Equal(t, http.StatusForbidden, resp.Code)

	var respBody utils.Response
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, utils.CodeCannotReportSelf, respBody.Code)
}

func TestReportPost_Duplicate(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "posts" WHERE id = \$1(.+)`).
		WithArgs(reportPosID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name"}).
			AddRow(reportPosID, ownerID, "Test Post"))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "reports" (.+) RETURNING "id"`).
		WillReturnError(gorm.ErrDuplicatedKey)
	mock.ExpectRollback()

	req, _ := http.NewRequest(http.MethodPost, "/posts/"+reportPosID+"/report", reportBody(t))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	reportRouter().ServeHTTP(resp, req)

	assert.Equal(t, http.StatusConflict, resp.Code)

	var respBody utils.Response
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, utils.CodeAlreadyReported, respBody.Code)
}

func TestReportPost_InvalidReason(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "posts" WHERE id = \$1(.+)`).
		WithArgs(reportPosID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name"}).
			AddRow(reportPosID, ownerID, "Test Post"))

	body, _ := json.Marshal(map[string]string{"reason": "NOT_A_REASON"})
	req, _ := http.NewRequest(http.MethodPost, "/posts/"+reportPosID+"/report", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	reportRouter().ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestReportPost_PostNotFound(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "posts" WHERE id = \$1(.+)`).
		WithArgs(reportPosID).
		WillReturnError(gorm.ErrRecordNotFound)

	req, _ := http.NewRequest(http.MethodPost, "/posts/"+reportPosID+"/report", reportBody(t))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	reportRouter().ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)

	var respBody utils.Response
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, utils.CodePostNotFound, respBody.Code)
}
