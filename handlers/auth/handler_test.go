package auth

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

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	testutils.InitTestMain()

	os.Setenv("JWT_SECRET", "test-secret")

	log.SetOutput(io.Discard)

	exitCode := m.Run()

	log.SetOutput(os.Stdout)

	os.Exit(exitCode)
}

func postJSON(r *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	jsonData, _ := json.Marshal(payload)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestCreateUser_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE email = \$1(.+)`).
		WithArgs("test@example.com").
		WillReturnError(gorm.ErrRecordNotFound)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users" (.+) RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("user123"))
	mock.ExpectCommit()

	r := testutils.SetupTestRouter()
	r.POST("/register", CreateUser)

	resp := postJSON(r, "/register", map[string]string{
		"email":    "test@example.com",
		"password": "Password123",
		"userName": "tester",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)

	var respBody map[string]string
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, "User created successfully", respBody["message"])
	assert.Equal(t, "test@example.com", respBody["email"])
}

func TestCreateUser_InvalidEmailFormat(t *testing.T) {
	r := testutils.SetupTestRouter()
	r.POST("/register", CreateUser)

	resp := postJSON(r, "/register", map[string]string{
		"email":    "invalid-email",
		"password": "Password123",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestCreateUser_WeakPassword(t *testing.T) {
	r := testutils.SetupTestRouter()
	r.POST("/register", CreateUser)

	// No uppercase, no digit.
	resp := postJSON(r, "/register", map[string]string{
		"email":    "test@example.com",
		"password": "weakpassword",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var respBody map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Contains(t, respBody["error"], "lowercase")
}

func TestCreateUser_EmailAlreadyUsed(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE email = \$1(.+)`).
		WithArgs("test@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).AddRow("user123", "test@example.com"))

	r := testutils.SetupTestRouter()
	r.POST("/register", CreateUser)

	resp := postJSON(r, "/register", map[string]string{
		"email":    "test@example.com",
		"password": "Password123",
	})

	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestLogin_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	hash, _ := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.DefaultCost)
	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE email = \$1(.+)`).
		WithArgs("test@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "role", "enable"}).
			AddRow("user123", "test@example.com", string(hash), "USER", true))

	r := testutils.SetupTestRouter()
	r.POST("/login", Login)

	resp := postJSON(r, "/login", map[string]string{
		"email":    "test@example.com",
		"password": "Password123",
	})

	assert.Equal(t, http.StatusOK, resp.Code)

	var respBody map[string]string
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.NotEmpty(t, respBody["accessToken"])
	assert.NotEmpty(t, respBody["refreshToken"])
	assert.NotEqual(t, respBody["accessToken"], respBody["refreshToken"])
}

func TestLogin_WrongPassword(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	hash, _ := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.DefaultCost)
	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE email = \$1(.+)`).
		WithArgs("test@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "role", "enable"}).
			AddRow("user123", "test@example.com", string(hash), "USER", true))

	r := testutils.SetupTestRouter()
	r.POST("/login", Login)

	resp := postJSON(r, "/login", map[string]string{
		"email":    "test@example.com",
		"password": "WrongPassword1",
	})

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestLogin_DisabledAccount(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	hash, _ := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.DefaultCost)
	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE email = \$1(.+)`).
		WithArgs("test@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "role", "enable"}).
			AddRow("user123", "test@example.com", string(hash), "USER", false))

	r := testutils.SetupTestRouter()
	r.POST("/login", Login)

	resp := postJSON(r, "/login", map[string]string{
		"email":    "test@example.com",
		"password": "Password123",
	})

	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestLogin_UnknownEmail(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE email = \$1(.+)`).
		WithArgs("nobody@example.com").
		WillReturnError(gorm.ErrRecordNotFound)

	r := testutils.SetupTestRouter()
	r.POST("/login", Login)

	resp := postJSON(r, "/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "Password123",
	})

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
