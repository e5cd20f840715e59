package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/khaynem/WasteWise-Backend/internal/database"
	"github.com/khaynem/WasteWise-Backend/internal/models"
	"github.com/khaynem/WasteWise-Backend/internal/services"
	apperrors "github.com/khaynem/WasteWise-Backend/pkg/errors"
	"github.com/khaynem/WasteWise-Backend/pkg/logger"
)

// --- User moderation ---

func GetAllUsers(c *gin.Context) {
	var users []models.User
	if err := database.DB.Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching users"})
		return
	}

	out := make([]profileView, 0, len(users))
	for i := range users {
		out = append(out, toProfileView(&users[i]))
	}
	c.JSON(http.StatusOK, out)
}

func setUserStatus(c *gin.Context, status models.UserStatus, verb string) {
	var user models.User
	if err := database.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	if err := database.DB.Model(&user).Update("status", status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error " + verb + " user"})
		return
	}
	user.Status = status

	logger.Info().Str("user_id", user.ID).Str("status", string(status)).Msg("User status changed")

	c.JSON(http.StatusOK, gin.H{
		"message": "User " + verb + " successfully",
		"user":    toProfileView(&user),
	})
}

func SuspendUser(c *gin.Context)  { setUserStatus(c, models.StatusSuspended, "suspended") }
func BanUser(c *gin.Context)      { setUserStatus(c, models.StatusBanned, "banned") }
func ActivateUser(c *gin.Context) { setUserStatus(c, models.StatusActive, "activated") }

func AdminDeleteUser(c *gin.Context) {
	userID := c.Param("id")

	if err := deleteUserCascade(database.DB, userID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	services.InvalidateLeaderboard()
	logger.Info().Str("user_id", userID).Msg("User deleted by admin")

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// --- Reports ---

func AdminGetAllReports(c *gin.Context) {
	var reports []models.Report
	if err := database.DB.Order("date desc").Find(&reports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching reports"})
		return
	}
	c.JSON(http.StatusOK, reports)
}

func ViewReport(c *gin.Context) {
	var report models.Report
	if err := database.DB.First(&report, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Report not found"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// ResolveReport flips a report to resolved and notifies the reporter. The
// conditional update means a second resolve call is a no-op conflict rather
// than a second email.
func ResolveReport(c *gin.Context) {
	var report models.Report
	if err := database.DB.First(&report, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Report not found"})
		return
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", report.Reporter).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	res := database.DB.Model(&models.Report{}).
		Where("id = ? AND status = ?", report.ID, models.ReportPending).
		Update("status", models.ReportResolved)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update report status"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"message": "Report is already resolved"})
		return
	}
	report.Status = models.ReportResolved

	if err := services.SendReportResolvedEmail(user.Email, &report); err != nil {
		logger.Error().Err(err).Str("report_id", report.ID).Msg("Failed to send resolution email")
	}

	c.JSON(http.StatusOK, gin.H{"message": "Report marked as resolved", "report": report})
}

func DownloadReportsPDF(c *gin.Context) {
	status := c.Query("status")
	from := c.Query("from")
	to := c.Query("to")

	query := database.DB.Model(&models.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			query = query.Where("date >= ?", t)
		}
	}
	if to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			query = query.Where("date <= ?", t)
		}
	}

	var reports []models.Report
	if err := query.Order("date desc").Find(&reports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error generating report PDF"})
		return
	}
	if len(reports) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No reports found for the selected criteria."})
		return
	}

	var buf bytes.Buffer
	if err := services.WriteReportsPDF(&buf, reports, status, from, to); err != nil {
		logger.Error().Err(err).Msg("PDF generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error generating report PDF"})
		return
	}

	filename := fmt.Sprintf("waste-reports-%s.pdf", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// --- Schedules ---

type EditScheduleInput struct {
	Barangay string `json:"barangay" binding:"required"`
	TypeName string `json:"typeName" binding:"required"`
	NewDay   string `json:"newDay" binding:"required"`
}

func EditSchedule(c *gin.Context) {
	var input EditScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Missing required fields: barangay, typeName, and newDay are required",
		})
		return
	}

	var schedule models.Schedule
	err := database.DB.Preload("Entries").Where("barangay = ?", input.Barangay).
		First(&schedule).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"message": fmt.Sprintf("Schedule not found for barangay: %s", input.Barangay),
		})
		return
	}

	var entry *models.ScheduleEntry
	for i := range schedule.Entries {
		if schedule.Entries[i].TypeName == input.TypeName {
			entry = &schedule.Entries[i]
			break
		}
	}
	if entry == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"message": fmt.Sprintf("Type '%s' not found in barangay '%s'", input.TypeName, input.Barangay),
		})
		return
	}

	oldDay := entry.Day
	if err := database.DB.Model(entry).Update("day", input.NewDay).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating schedule"})
		return
	}
	entry.Day = input.NewDay

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Successfully updated %s schedule for %s", input.TypeName, input.Barangay),
		"data": gin.H{
			"barangay": schedule.Barangay,
			"typeName": input.TypeName,
			"oldDay":   oldDay,
			"newDay":   input.NewDay,
			"typeId":   entry.ID,
		},
		"updatedSchedule": schedule,
	})
}

// --- Challenges and submissions ---

type CreateChallengeInput struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description" binding:"required"`
	Instructions string `json:"instructions" binding:"required"`
	Points       int    `json:"points" binding:"required"`
	Tier         string `json:"tier"`
}

func CreateChallenge(c *gin.Context) {
	var input CreateChallengeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields required"})
		return
	}

	challenge := models.Challenge{
		Title:        input.Title,
		Description:  input.Description,
		Instructions: input.Instructions,
		Points:       input.Points,
	}
	if input.Tier != "" {
		challenge.Tier = models.ChallengeTier(input.Tier)
	}

	if err := database.DB.Create(&challenge).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating challenge"})
		return
	}
	c.JSON(http.StatusCreated, challenge)
}

func DeleteChallenge(c *gin.Context) {
	var challenge models.Challenge
	if err := database.DB.First(&challenge, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Challenge not found"})
		return
	}

	if err := database.DB.Delete(&challenge).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting challenge"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Challenge deleted"})
}

func GetSubmissionsForChallenge(c *gin.Context) {
	var submissions []models.Submission
	err := database.DB.Where("challenge_id = ?", c.Param("id")).
		Order("submitted_at desc").Find(&submissions).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching submissions"})
		return
	}
	c.JSON(http.StatusOK, submissions)
}

// RewardSubmission approves a pending submission and credits the challenge
// points to the submitter, exactly once.
func RewardSubmission(c *gin.Context) {
	submissionID := c.Param("id")

	submission, ranking, err := services.ApproveSubmission(database.DB, submissionID)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			c.JSON(appErr.Code, gin.H{"message": appErr.Message})
			return
		}
		logger.Error().Err(err).Str("submission_id", submissionID).Msg("Submission approval failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error approving submission"})
		return
	}

	services.InvalidateLeaderboard()

	c.JSON(http.StatusOK, gin.H{
		"message":    "Submission approved",
		"submission": submission,
		"ranking":    ranking,
	})
}
