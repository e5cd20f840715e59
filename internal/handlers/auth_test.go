package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/khaynem/WasteWise-Backend/internal/database"
	"github.com/khaynem/WasteWise-Backend/internal/models"
)

func TestSignup_CreatesUnverifiedUser(t *testing.T) {
	SetupTestDB(t)

	c, w := jsonContext(t, http.MethodPost, map[string]string{
		"username":    "newuser",
		"email":       "newuser@example.com",
		"password":    "secret123",
		"confirmPass": "secret123",
	})
	Signup(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var user models.User
	require.NoError(t, database.DB.Where("email = ?", "newuser@example.com").First(&user).Error)
	assert.False(t, user.Verified)
	assert.Len(t, user.EmailToken, 64)
	assert.NotEqual(t, "secret123", user.Password)
}

func TestSignup_PasswordMismatch(t *testing.T) {
	SetupTestDB(t)

	c, w := jsonContext(t, http.MethodPost, map[string]string{
		"username":    "mismatch",
		"email":       "mismatch@example.com",
		"password":    "secret123",
		"confirmPass": "different",
	})
	Signup(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	database.DB.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	SetupTestDB(t)
	seedUser(t, "dup-user", "taken")

	c, w := jsonContext(t, http.MethodPost, map[string]string{
		"username":    "someoneelse",
		"email":       "taken@example.com",
		"password":    "secret123",
		"confirmPass": "secret123",
	})
	Signup(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogin_Success(t *testing.T) {
	SetupTestDB(t)

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := models.User{
		ID:       "login-user",
		Username: "loginuser",
		Email:    "loginuser@example.com",
		Password: string(hashed),
		Role:     models.RoleUser,
		Status:   models.StatusActive,
		Verified: true,
	}
	require.NoError(t, database.DB.Create(&user).Error)

	c, w := jsonContext(t, http.MethodPost, map[string]string{
		"cred":     "loginuser",
		"password": "secret123",
	})
	Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.NotEmpty(t, body["token"])

	var updated models.User
	require.NoError(t, database.DB.First(&updated, "id = ?", user.ID).Error)
	assert.NotNil(t, updated.LastLogin)
}

func TestLogin_WrongPassword(t *testing.T) {
	SetupTestDB(t)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	user := models.User{
		ID:       "wrongpw-user",
		Username: "wrongpw",
		Email:    "wrongpw@example.com",
		Password: string(hashed),
		Status:   models.StatusActive,
		Verified: true,
	}
	require.NoError(t, database.DB.Create(&user).Error)

	c, w := jsonContext(t, http.MethodPost, map[string]string{
		"cred":     "wrongpw",
		"password": "not-the-password",
	})
	Login(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_UnverifiedRejected(t *testing.T) {
	SetupTestDB(t)

	user := models.User{
		ID:       "unverified-user",
		Username: "unverified",
		Email:    "unverified@example.com",
		Password: "hashed",
		Status:   models.StatusActive,
		Verified: false,
	}
	require.NoError(t, database.DB.Create(&user).Error)

	c, w := jsonContext(t, http.MethodPost, map[string]string{
		"cred":     "unverified",
		"password": "whatever",
	})
	Login(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLogin_SuspendedRejected(t *testing.T) {
	SetupTestDB(t)

	user := models.User{
		ID:       "suspended-user",
		Username: "suspended",
		Email:    "suspended@example.com",
		Password: "hashed",
		Status:   models.StatusSuspended,
		Verified: true,
	}
	require.NoError(t, database.DB.Create(&user).Error)

	c, w := jsonContext(t, http.MethodPost, map[string]string{
		"cred":     "suspended",
		"password": "whatever",
	})
	Login(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	body := decodeBody(t, w)
	assert.Contains(t, body["message"], "suspended")
}

func TestLogin_UnknownUser(t *testing.T) {
	SetupTestDB(t)

	c, w := jsonContext(t, http.MethodPost, map[string]string{
		"cred":     "ghost",
		"password": "whatever",
	})
	Login(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVerifyEmail_MarksVerifiedAndSeedsRanking(t *testing.T) {
	SetupTestDB(t)

	token := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	user := models.User{
		ID:         "verify-user",
		Username:   "verifyme",
		Email:      "verifyme@example.com",
		Password:   "hashed",
		Status:     models.StatusActive,
		Verified:   false,
		EmailToken: token,
	}
	require.NoError(t, database.DB.Create(&user).Error)

	c, w := jsonContext(t, http.MethodGet, nil)
	c.Params = gin.Params{{Key: "token", Value: token}}
	VerifyEmail(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.User
	require.NoError(t, database.DB.First(&updated, "id = ?", user.ID).Error)
	assert.True(t, updated.Verified)
	assert.Empty(t, updated.EmailToken)

	var ranking models.Ranking
	require.NoError(t, database.DB.Where("user_id = ?", user.ID).First(&ranking).Error)
	assert.Equal(t, 0, ranking.Points)
	assert.Equal(t, "Bronze", ranking.Rank)
}

func TestVerifyEmail_BadTokenFormat(t *testing.T) {
	SetupTestDB(t)

	c, w := jsonContext(t, http.MethodGet, nil)
	c.Params = gin.Params{{Key: "token", Value: "short"}}
	VerifyEmail(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestForgotPassword_UnknownEmail(t *testing.T) {
	SetupTestDB(t)

	c, w := jsonContext(t, http.MethodPost, map[string]string{
		"email": "nobody@example.com",
	})
	ForgotPassword(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckAuth(t *testing.T) {
	SetupTestDB(t)
	user := seedUser(t, "check-user", "checker")

	c, w := jsonContext(t, http.MethodGet, nil)
	authenticate(c, user)
	CheckAuth(c)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["authenticated"])
	assert.Equal(t, "checker", body["username"])
}

func TestCheckAuth_Anonymous(t *testing.T) {
	SetupTestDB(t)

	c, w := jsonContext(t, http.MethodGet, nil)
	CheckAuth(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["authenticated"])
}
