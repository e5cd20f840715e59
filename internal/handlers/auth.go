package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/khaynem/WasteWise-Backend/internal/config"
	"github.com/khaynem/WasteWise-Backend/internal/database"
	"github.com/khaynem/WasteWise-Backend/internal/models"
	"github.com/khaynem/WasteWise-Backend/internal/services"
	"github.com/khaynem/WasteWise-Backend/pkg/logger"
	"github.com/khaynem/WasteWise-Backend/pkg/utils"
)

const authCookieName = "authToken"

func randomHexToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

type SignupInput struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	ConfirmPass string `json:"confirmPass" binding:"required"`
}

func Signup(c *gin.Context) {
	var input SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}
	if input.Password != input.ConfirmPass {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Password doesn't match"})
		return
	}

	var existing models.User
	err := database.DB.Where("email = ? OR username = ?", input.Email, input.Username).
		First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"message": "Username or email already in use"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	emailToken, err := randomHexToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate verification token"})
		return
	}

	user := models.User{
		Username:   input.Username,
		Email:      input.Email,
		Password:   string(hashed),
		Verified:   false,
		EmailToken: emailToken,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		logger.Warn().Err(err).Str("email", input.Email).Msg("Signup failed")
		c.JSON(http.StatusConflict, gin.H{"message": "Username or email already in use"})
		return
	}

	verifyLink := fmt.Sprintf("%s/api/auth/verify-email/%s",
		strings.TrimRight(config.AppConfig.BackendURL, "/"), emailToken)

	if err := services.SendVerificationEmail(user.Email, user.Username, verifyLink); err != nil {
		logger.Error().Err(err).Str("email", user.Email).Msg("Failed to send verification email")
	}

	logger.Info().Str("user_id", user.ID).Msg("User registered")

	c.JSON(http.StatusOK, gin.H{
		"message": "Signup successful. Check your email to verify your account.",
	})
}

type LoginInput struct {
	Cred     string `json:"cred" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	var user models.User
	err := database.DB.Where("username = ? OR email = ?", input.Cred, input.Cred).
		First(&user).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if !user.Verified {
		c.JSON(http.StatusForbidden, gin.H{"message": "Email not verified. Please check your inbox."})
		return
	}
	if user.Status != models.StatusActive {
		c.JSON(http.StatusForbidden, gin.H{"message": fmt.Sprintf("Account is %s. Contact support.", user.Status)})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
		return
	}

	now := time.Now()
	user.LastLogin = &now
	if err := database.DB.Model(&user).Update("last_login", now).Error; err != nil {
		logger.Warn().Err(err).Str("user_id", user.ID).Msg("Failed to update last login")
	}

	token, err := utils.GenerateToken(user.ID, user.Username, user.Email, string(user.Role))
	if err != nil {
		logger.Error().Err(err).Msg("Failed to generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(authCookieName, token, int((24 * time.Hour).Seconds()), "/", "", false, false)

	logger.Info().Str("user_id", user.ID).Msg("User logged in")

	c.JSON(http.StatusOK, gin.H{
		"message":   "Login successful",
		"token":     token,
		"role":      user.Role,
		"joinDate":  user.JoinDate,
		"lastLogin": user.LastLogin,
	})
}

// CheckAuth reports whether the caller holds a valid session.
func CheckAuth(c *gin.Context) {
	claims := claimsFrom(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"id":            claims.UserID,
		"username":      claims.Username,
		"role":          claims.Role,
	})
}

func Logout(c *gin.Context) {
	c.SetCookie(authCookieName, "", -1, "/", "", false, false)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

type ForgotPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

func ForgotPassword(c *gin.Context) {
	var input ForgotPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	token, err := randomHexToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate reset token"})
		return
	}

	if err := database.StoreResetToken(token, user.ID); err != nil {
		logger.Error().Err(err).Msg("Failed to store reset token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reset token"})
		return
	}

	resetLink := fmt.Sprintf("%s/reset-password/%s",
		strings.TrimRight(config.AppConfig.FrontendURL, "/"), token)

	if err := services.SendPasswordResetEmail(user.Email, user.Username, resetLink); err != nil {
		logger.Error().Err(err).Str("email", user.Email).Msg("Failed to send reset email")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send reset email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reset link sent to your email."})
}

type ResetPasswordInput struct {
	Password    string `json:"password" binding:"required"`
	ConfirmPass string `json:"confirmPass" binding:"required"`
}

func ResetPassword(c *gin.Context) {
	token := c.Param("token")

	var input ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}
	if input.Password != input.ConfirmPass {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Passwords don't match"})
		return
	}

	userID, err := database.ConsumeResetToken(token)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid or expired token"})
		return
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	if err := database.DB.Model(&user).Update("password", string(hashed)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}

	logger.Info().Str("user_id", user.ID).Msg("Password reset")

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successful"})
}

func VerifyEmail(c *gin.Context) {
	token := c.Param("token")
	if len(token) != 64 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid token format."})
		return
	}

	var user models.User
	if err := database.DB.Where("email_token = ?", token).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Invalid or expired verification link."})
		return
	}

	if user.Verified {
		redirectVerified(c, "Email already verified.")
		return
	}

	updates := map[string]interface{}{"verified": true, "email_token": ""}
	if err := database.DB.Model(&user).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify email"})
		return
	}

	// Seed a zero-point ranking so the user shows up with Bronze immediately.
	ranking := models.Ranking{
		UserID: user.ID,
		Points: 0,
		Rank:   services.RankForPoints(0),
	}
	if err := database.DB.Where("user_id = ?", user.ID).FirstOrCreate(&ranking).Error; err != nil {
		logger.Warn().Err(err).Str("user_id", user.ID).Msg("Failed to seed initial ranking")
	}

	logger.Info().Str("user_id", user.ID).Msg("Email verified")
	redirectVerified(c, "Email verified successfully!")
}

func redirectVerified(c *gin.Context, fallbackMessage string) {
	if config.AppConfig.FrontendURL != "" {
		c.Redirect(http.StatusFound, strings.TrimRight(config.AppConfig.FrontendURL, "/")+"/email-verified")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fallbackMessage})
}
