package subscriptions

import (
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
	subscriberID  = "abc12345-e89b-12d3-a456-426614174000"
	testCreatorID = "def67890-e89b-12d3-a456-426614174000"
)

func subscribeRouter() *gin.Engine {
	r := testutils.SetupTestRouter()
	r.POST("/subscriptions/:creatorId", func(c *gin.Context) {
		c.Set("user_id", subscriberID)
		SubscribeHandler(c)
	})
	return r
}

func TestSubscribe_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = \$1(.+)`).
		WithArgs(testCreatorID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "role"}).AddRow(testCreatorID, "CREATOR"))

	mock.ExpectQuery(`SELECT (.+) FROM "subscriptions" WHERE user_id = \$1 AND creator_id = \$2(.+)`).
		WithArgs(subscriberID, testCreatorID).
		WillReturnError(gorm.ErrRecordNotFound)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "subscriptions" (.+) RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("sub123"))
	mock.ExpectCommit()

	req, _ := http.NewRequest(http.MethodPost, "/subscriptions/"+testCreatorID, nil)
	resp := httptest.NewRecorder()
	subscribeRouter().ServeHTTP(resp, req)

	assert.Equal(t, http.StatusCreated, resp.Code)

	var respBody map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, "FREE", respBody["tier"])
	assert.Equal(t, "ACTIVE", respBody["status"])
	assert.Nil(t, respBody["expiresAt"])
}

func TestSubscribe_Self(t *testing.T) {
	_, _, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	req, _ := http.NewRequest(http.MethodPost, "/subscriptions/"+subscriberID, nil)
	resp := httptest.NewRecorder()
	subscribeRouter().ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var respBody utils.Response
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, utils.CodeSelfSubscribeForbidden, respBody.Code)
}

func TestSubscribe_TargetNotCreator(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = \$1(.+)`).
		WithArgs(testCreatorID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "role"}).AddRow(testCreatorID, "USER"))

	req, _ := http.NewRequest(http.MethodPost, "/subscriptions/"+testCreatorID, nil)
	resp := httptest.NewRecorder()
	subscribeRouter().ServeHTTP(resp, req)

	assert.Equal(t, http.StatusForbidden, resp.Code)

	var respBody utils.Response
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, utils.CodeNotCreator, respBody.Code)
}

func TestSubscribe_AlreadySubscribed(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = \$1(.+)`).
		WithArgs(testCreatorID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "role"}).AddRow(testCreatorID, "CREATOR"))

	mock.ExpectQuery(`SELECT (.+) FROM "subscriptions" WHERE user_id = \$1 AND creator_id = \$2(.+)`).
		WithArgs(subscriberID, testCreatorID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "creator_id"}).
			AddRow("sub123", subscriberID, testCreatorID))

	req, _ := http.NewRequest(http.MethodPost, "/subscriptions/"+testCreatorID, nil)
	resp := httptest.NewRecorder()
	subscribeRouter().ServeHTTP(resp, req)

	assert.Equal(t, http.StatusConflict, resp.Code)

	var respBody utils.Response
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, utils.CodeConflict, respBody.Code)
}
