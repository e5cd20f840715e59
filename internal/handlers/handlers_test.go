package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/khaynem/WasteWise-Backend/internal/config"
	"github.com/khaynem/WasteWise-Backend/internal/database"
	"github.com/khaynem/WasteWise-Backend/internal/models"
	"github.com/khaynem/WasteWise-Backend/pkg/utils"
)

// SetupTestDB points the global DB at a fresh in-memory SQLite database and
// installs a minimal test config. Redis stays nil so caching and rate
// limiting are skipped.
func SetupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Ranking{},
		&models.TierUnlock{},
		&models.Challenge{},
		&models.ChallengeCompletion{},
		&models.Submission{},
		&models.Report{},
		&models.WasteLog{},
		&models.Schedule{},
		&models.ScheduleEntry{},
		&models.Listing{},
		&models.ListingComment{},
		&models.ListingMetric{},
	))
	database.DB = db

	config.AppConfig = &config.Config{
		JWTSecret:   "test-secret",
		FrontendURL: "",
		BackendURL:  "http://localhost:3001",
	}

	gin.SetMode(gin.TestMode)
}

func seedUser(t *testing.T, id, username string) models.User {
	t.Helper()
	user := models.User{
		ID:       id,
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
		Role:     models.RoleUser,
		Status:   models.StatusActive,
		Verified: true,
	}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}

// jsonContext builds a test context carrying a JSON body.
func jsonContext(t *testing.T, method string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	}
	req, err := http.NewRequest(method, "/", reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

// multipartContext builds a test context with form fields plus optional file
// parts keyed by field name.
func multipartContext(t *testing.T, fields map[string]string, files map[string][]byte) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for field, content := range files {
		part, err := mw.CreateFormFile(field, field+".jpg")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, "/", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.Request = req
	return c, w
}

func authenticate(c *gin.Context, user models.User) {
	c.Set("userId", user.ID)
	c.Set("claims", &utils.Claims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     string(user.Role),
	})
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
