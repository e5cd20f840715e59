package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/khaynem/WasteWise-Backend/internal/database"
	"github.com/khaynem/WasteWise-Backend/internal/models"
	"github.com/khaynem/WasteWise-Backend/internal/services"
	apperrors "github.com/khaynem/WasteWise-Backend/pkg/errors"
	"github.com/khaynem/WasteWise-Backend/pkg/logger"
)

type challengeWithCompletion struct {
	models.Challenge
	Completed bool `json:"completed"`
}

func GetAllChallenges(c *gin.Context) {
	userID := c.GetString("userId")

	var challenges []models.Challenge
	if err := database.DB.Order("created_at desc").Find(&challenges).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching challenges"})
		return
	}

	var completions []models.ChallengeCompletion
	if err := database.DB.Where("user_id = ?", userID).Find(&completions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching challenges"})
		return
	}
	completed := make(map[string]bool, len(completions))
	for _, comp := range completions {
		completed[comp.ChallengeID] = true
	}

	out := make([]challengeWithCompletion, 0, len(challenges))
	for _, ch := range challenges {
		out = append(out, challengeWithCompletion{Challenge: ch, Completed: completed[ch.ID]})
	}
	c.JSON(http.StatusOK, out)
}

func GetChallengeByID(c *gin.Context) {
	var challenge models.Challenge
	if err := database.DB.First(&challenge, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Challenge not found"})
		return
	}
	c.JSON(http.StatusOK, challenge)
}

// SubmitEntry records a pending submission for review. Points are only
// granted when an admin approves it.
func SubmitEntry(c *gin.Context) {
	userID := c.GetString("userId")
	claims := claimsFrom(c)
	challengeID := c.Param("challengeId")

	description := strings.TrimSpace(c.PostForm("description"))
	if description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Description is required"})
		return
	}

	var challenge models.Challenge
	if err := database.DB.First(&challenge, "id = ?", challengeID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Challenge not found"})
		return
	}

	hasAccess, err := services.HasTierAccess(database.DB, userID, challenge.Tier)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error handling submission"})
		return
	}
	if !hasAccess {
		c.JSON(http.StatusForbidden, gin.H{"message": "Tier is locked. Unlock it first."})
		return
	}

	var existing models.ChallengeCompletion
	err = database.DB.Where("challenge_id = ? AND user_id = ?", challengeID, userID).
		First(&existing).Error
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "You have already completed this challenge"})
		return
	}

	proofURL, err := uploadFormImage(c, "image", "challenges")
	if errors.Is(err, errUploadsDisabled) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Image uploads are temporarily unavailable"})
		return
	}
	if err != nil {
		logger.Error().Err(err).Msg("Submission proof upload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error uploading proof image"})
		return
	}
	if proofURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Image is required"})
		return
	}

	username := "User"
	if claims != nil {
		username = claims.Username
	}

	submission := models.Submission{
		ChallengeID: challengeID,
		UserID:      userID,
		Username:    username,
		Proof:       proofURL,
		Description: description,
		Status:      models.SubmissionPending,
		SubmittedAt: time.Now(),
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&submission).Error; err != nil {
			return err
		}
		completion := models.ChallengeCompletion{ChallengeID: challengeID, UserID: userID}
		return tx.Create(&completion).Error
	})
	if err != nil {
		logger.Error().Err(err).Str("user_id", userID).Msg("Failed to record submission")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error handling submission"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Submission received",
		"submissionId": submission.ID,
	})
}

type UnlockTierInput struct {
	Tier string `json:"tier" binding:"required"`
}

func UnlockChallengeTier(c *gin.Context) {
	userID := c.GetString("userId")

	var input UnlockTierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Tier is required"})
		return
	}

	ranking, err := services.UnlockTier(database.DB, userID, models.ChallengeTier(input.Tier))
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			c.JSON(appErr.Code, gin.H{"message": appErr.Message})
			return
		}
		logger.Error().Err(err).Str("user_id", userID).Msg("Tier unlock failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error unlocking tier"})
		return
	}

	services.InvalidateLeaderboard()

	c.JSON(http.StatusOK, gin.H{
		"message": "Tier unlocked",
		"tier":    input.Tier,
		"ranking": ranking,
	})
}
