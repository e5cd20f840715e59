package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/khaynem/WasteWise-Backend/internal/database"
	"github.com/khaynem/WasteWise-Backend/internal/models"
	"github.com/khaynem/WasteWise-Backend/internal/services"
	"github.com/khaynem/WasteWise-Backend/pkg/logger"
)

func GetAllSchedules(c *gin.Context) {
	var schedules []models.Schedule
	if err := database.DB.Preload("Entries").Find(&schedules).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching schedules"})
		return
	}
	c.JSON(http.StatusOK, schedules)
}

// profileView is the user document without credentials and internal fields.
type profileView struct {
	ID        string            `json:"id"`
	Username  string            `json:"username"`
	Email     string            `json:"email"`
	Role      models.Role       `json:"role"`
	Status    models.UserStatus `json:"status"`
	JoinDate  time.Time         `json:"joinDate"`
	LastLogin *time.Time        `json:"lastLogin"`
}

func toProfileView(u *models.User) profileView {
	return profileView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		Status:    u.Status,
		JoinDate:  u.JoinDate,
		LastLogin: u.LastLogin,
	}
}

func ViewProfile(c *gin.Context) {
	userID := c.GetString("userId")

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toProfileView(&user)})
}

type EditProfileInput struct {
	Username string `json:"username"`
}

func EditProfile(c *gin.Context) {
	userID := c.GetString("userId")

	var input EditProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if input.Username != "" {
		if err := database.DB.Model(&user).Update("username", input.Username).Error; err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Username already taken"})
			return
		}
		user.Username = input.Username
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "user": toProfileView(&user)})
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

func ChangePassword(c *gin.Context) {
	userID := c.GetString("userId")

	var input ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Current and new passwords are required"})
		return
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.CurrentPassword)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Current password is incorrect"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	if err := database.DB.Model(&user).Update("password", string(hashed)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}

	logger.Info().Str("user_id", user.ID).Msg("Password changed")

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// deleteUserCascade removes a user and everything keyed to them in one
// transaction so no orphaned rankings or submissions survive the account.
func deleteUserCascade(db *gorm.DB, userID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			return err
		}

		deletes := []interface{}{
			&models.Ranking{},
			&models.TierUnlock{},
			&models.Submission{},
			&models.ChallengeCompletion{},
		}
		for _, m := range deletes {
			if err := tx.Where("user_id = ?", userID).Delete(m).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("recorder = ?", userID).Delete(&models.WasteLog{}).Error; err != nil {
			return err
		}
		if err := tx.Where("reporter = ?", userID).Delete(&models.Report{}).Error; err != nil {
			return err
		}
		var listingIDs []string
		if err := tx.Model(&models.Listing{}).Where("user_id = ?", userID).
			Pluck("id", &listingIDs).Error; err != nil {
			return err
		}
		if len(listingIDs) > 0 {
			if err := tx.Where("listing_id IN ?", listingIDs).Delete(&models.ListingComment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("listing_id IN ?", listingIDs).Delete(&models.ListingMetric{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", listingIDs).Delete(&models.Listing{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("author = ?", userID).Delete(&models.ListingComment{}).Error; err != nil {
			return err
		}

		return tx.Delete(&user).Error
	})
}

func DeleteAccount(c *gin.Context) {
	userID := c.GetString("userId")

	if err := deleteUserCascade(database.DB, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		logger.Error().Err(err).Str("user_id", userID).Msg("Failed to delete account")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting account"})
		return
	}

	services.InvalidateLeaderboard()
	c.SetCookie(authCookieName, "", -1, "/", "", false, false)

	logger.Info().Str("user_id", userID).Msg("Account deleted")

	c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
}
